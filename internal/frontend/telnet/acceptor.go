package telnet

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
)

// SessionHandler runs the command loop of one connected client. The context
// is cancelled when the acceptor stops.
type SessionHandler interface {
	HandleSession(ctx context.Context, conn *Conn) error
}

// crowdedMessage is sent to connections refused at the session cap.
const crowdedMessage = "The dungeon is crowded. Try again later."

// Acceptor listens for Telnet connections and runs each one through a
// SessionHandler on its own goroutine, up to the configured session cap.
type Acceptor struct {
	cfg     config.TelnetConfig
	handler SessionHandler
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	listener net.Listener
	running  bool
	active   map[*Conn]struct{}
}

// NewAcceptor creates an acceptor for cfg.
//
// Precondition: handler and logger must be non-nil.
func NewAcceptor(cfg config.TelnetConfig, handler SessionHandler, logger *zap.Logger) *Acceptor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Acceptor{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		active:  make(map[*Conn]struct{}),
	}
}

// ListenAndServe accepts connections until Stop is called.
//
// Postcondition: Returns nil after Stop, or the listen error.
func (a *Acceptor) ListenAndServe() error {
	start := time.Now()
	listener, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	a.mu.Lock()
	a.listener = listener
	a.running = true
	a.mu.Unlock()

	a.logger.Info("telnet acceptor listening",
		zap.String("addr", listener.Addr().String()),
		zap.Int("max_sessions", a.cfg.MaxSessions),
		zap.Duration("startup", time.Since(start)),
	)

	for {
		raw, err := listener.Accept()
		if err != nil {
			if a.ctx.Err() != nil {
				return nil
			}
			a.logger.Error("accepting connection", zap.Error(err))
			continue
		}
		conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
		if !a.admit(conn) {
			a.logger.Warn("connection refused, server full", zap.Stringer("remote_addr", raw.RemoteAddr()))
			_ = conn.WriteLine(Colorize(Yellow, crowdedMessage))
			_ = conn.Close()
			continue
		}
		a.wg.Add(1)
		go a.serve(conn)
	}
}

// admit registers conn unless the session cap is reached. A cap of 0 means
// unlimited.
func (a *Acceptor) admit(conn *Conn) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cfg.MaxSessions > 0 && len(a.active) >= a.cfg.MaxSessions {
		return false
	}
	a.active[conn] = struct{}{}
	return true
}

func (a *Acceptor) serve(conn *Conn) {
	start := time.Now()
	log := a.logger.With(zap.Stringer("remote_addr", conn.RemoteAddr()))
	defer func() {
		_ = conn.Close()
		a.mu.Lock()
		delete(a.active, conn)
		a.mu.Unlock()
		a.wg.Done()
	}()
	log.Info("client connected")

	if err := conn.Negotiate(); err != nil {
		log.Error("telnet negotiation failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	// Closing the socket is the only way to unblock a pending ReadLine.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	err := a.handler.HandleSession(ctx, conn)
	elapsed := zap.Duration("duration", time.Since(start))
	if err != nil {
		log.Debug("session ended", zap.Error(err), elapsed)
		return
	}
	log.Info("session ended cleanly", elapsed)
}

// Stop closes the listener and every open connection, then waits for the
// session goroutines to exit. Stopping twice is a no-op.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	a.cancel()
	_ = a.listener.Close()
	a.mu.Unlock()

	a.wg.Wait()
	a.logger.Info("telnet acceptor stopped")
}

// Addr returns the listening address, or "" before ListenAndServe binds.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// IsRunning reports whether the acceptor is accepting connections.
func (a *Acceptor) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Active returns the number of open sessions.
func (a *Acceptor) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.active)
}
