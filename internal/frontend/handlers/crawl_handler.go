package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/frontend/telnet"
	"github.com/cory-johannsen/crawl/internal/game/session"
)

// maxNameLength bounds adventurer names.
const maxNameLength = 20

// SessionStarter creates and ends exploration sessions for named players.
type SessionStarter interface {
	Start(ctx context.Context, name string) (*session.PlayerSession, error)
	End(uid string) error
}

// Banner is shown to every new connection.
var Banner = `
` + telnet.Bold + telnet.BrightRed + `   ____ ____      _    __        __ _
  / ___|  _ \    / \   \ \      / /| |
 | |   | |_) |  / _ \   \ \ /\ / / | |
 | |___|  _ <  / ___ \   \ V  V /  | |___
  \____|_| \_\/_/   \_\   \_/\_/   |_____|` + telnet.Reset + `

` + telnet.BrightYellow + `  A hundred floors down, the seals are waiting.` + telnet.Reset + `
`

// CrawlHandler implements telnet.SessionHandler: it asks for a name, starts
// an exploration session, and drives it until the player quits.
type CrawlHandler struct {
	sessions SessionStarter
	logger   *zap.Logger
}

// NewCrawlHandler creates a CrawlHandler.
//
// Precondition: sessions and logger must be non-nil.
func NewCrawlHandler(sessions SessionStarter, logger *zap.Logger) *CrawlHandler {
	return &CrawlHandler{sessions: sessions, logger: logger}
}

// HandleSession implements telnet.SessionHandler.
//
// Postcondition: Returns nil on clean quit, or an error if the session ended abnormally.
func (h *CrawlHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	addr := conn.RemoteAddr().String()

	if err := conn.Write([]byte(strings.ReplaceAll(Banner, "\n", "\r\n"))); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}

	sess, err := h.login(ctx, conn)
	if err != nil || sess == nil {
		return err
	}
	defer func() {
		if err := h.sessions.End(sess.UID); err != nil {
			h.logger.Warn("ending session", zap.String("uid", sess.UID), zap.Error(err))
		}
	}()

	h.logger.Info("adventurer entered",
		zap.String("remote_addr", addr),
		zap.String("name", sess.Name),
		zap.Duration("login_time", time.Since(start)),
	)
	prompt := telnet.Colorf(telnet.BrightCyan, "[%s]> ", sess.Name)
	driver := NewDriver(sess.Explore, NewTelnetPresenter(conn, prompt), NewRenderer(true), h.logger)
	return driver.Run(ctx)
}

// login asks for a name until a session starts or the player quits.
//
// Postcondition: Returns (nil, nil) when the player quit before starting.
func (h *CrawlHandler) login(ctx context.Context, conn *telnet.Conn) (*session.PlayerSession, error) {
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return nil, ctx.Err()
		default:
		}

		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "What is your name, adventurer? ")); err != nil {
			return nil, fmt.Errorf("writing prompt: %w", err)
		}
		line, err := conn.ReadLine()
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		name := strings.TrimSpace(line)
		switch strings.ToLower(name) {
		case "":
			continue
		case "quit", "exit":
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
			return nil, nil
		}
		if err := ValidateName(name); err != nil {
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, err.Error()))
			continue
		}
		sess, err := h.sessions.Start(ctx, name)
		if err != nil {
			h.logger.Debug("session start rejected", zap.String("name", name), zap.Error(err))
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Cannot begin: %v", err))
			continue
		}
		return sess, nil
	}
}

// ValidateName checks an adventurer name: 1 to 20 letters, digits, spaces
// or hyphens, starting with a letter.
func ValidateName(name string) error {
	if name == "" || len([]rune(name)) > maxNameLength {
		return fmt.Errorf("names must be 1-%d characters long", maxNameLength)
	}
	for i, r := range name {
		if i == 0 && !unicode.IsLetter(r) {
			return errors.New("names must start with a letter")
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' {
			return fmt.Errorf("names may not contain %q", r)
		}
	}
	return nil
}
