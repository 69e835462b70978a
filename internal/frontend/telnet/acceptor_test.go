package telnet

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/crawl/internal/config"
)

// echoHandler echoes each line until the client says quit.
type echoHandler struct {
	sessions  atomic.Int32
	cancelled atomic.Int32
}

func (h *echoHandler) HandleSession(ctx context.Context, conn *Conn) error {
	h.sessions.Add(1)
	defer func() {
		if ctx.Err() != nil {
			h.cancelled.Add(1)
		}
	}()
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return err
		}
		if line == "quit" {
			return conn.WriteLine("bye")
		}
		if err := conn.WriteLine("echo: " + line); err != nil {
			return err
		}
	}
}

func testTelnetConfig() config.TelnetConfig {
	return config.TelnetConfig{Host: "127.0.0.1", ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
}

func startAcceptor(t *testing.T, cfg config.TelnetConfig, handler SessionHandler) *Acceptor {
	t.Helper()
	acc := NewAcceptor(cfg, handler, zaptest.NewLogger(t))
	errCh := make(chan error, 1)
	go func() { errCh <- acc.ListenAndServe() }()
	require.Eventually(t, func() bool { return acc.IsRunning() && acc.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	t.Cleanup(func() {
		acc.Stop()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("ListenAndServe did not return after Stop")
		}
	})
	return acc
}

// client is a raw TCP peer that strips negotiation from what it reads.
type client struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func dial(t *testing.T, acc *Acceptor) *client {
	t.Helper()
	conn, err := net.DialTimeout("tcp", acc.Addr(), 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &client{t: t, conn: conn, r: bufio.NewReader(conn)}
}

func (c *client) say(line string) {
	_, err := c.conn.Write([]byte(line + "\r\n"))
	require.NoError(c.t, err)
}

func (c *client) line() string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	raw, err := c.r.ReadString('\n')
	require.NoError(c.t, err)
	return strings.TrimRight(string(FilterIAC([]byte(raw))), "\r\n")
}

func TestAcceptor_EchoAndQuit(t *testing.T) {
	handler := &echoHandler{}
	acc := startAcceptor(t, testTelnetConfig(), handler)

	c := dial(t, acc)
	c.say("hello")
	assert.Equal(t, "echo: hello", c.line())
	c.say("quit")
	assert.Equal(t, "bye", c.line())

	require.Eventually(t, func() bool { return acc.Active() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), handler.sessions.Load())
	assert.Zero(t, handler.cancelled.Load())
}

func TestAcceptor_ConcurrentClients(t *testing.T) {
	handler := &echoHandler{}
	acc := startAcceptor(t, testTelnetConfig(), handler)

	const n = 4
	clients := make([]*client, n)
	for i := range clients {
		clients[i] = dial(t, acc)
	}
	require.Eventually(t, func() bool { return acc.Active() == n }, 2*time.Second, 10*time.Millisecond)
	for i, c := range clients {
		word := strings.Repeat("x", i+1)
		c.say(word)
		assert.Equal(t, "echo: "+word, c.line())
	}
	for _, c := range clients {
		c.say("quit")
		assert.Equal(t, "bye", c.line())
	}
	require.Eventually(t, func() bool { return acc.Active() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(n), handler.sessions.Load())
}

func TestAcceptor_RefusesBeyondMaxSessions(t *testing.T) {
	cfg := testTelnetConfig()
	cfg.MaxSessions = 1
	acc := startAcceptor(t, cfg, &echoHandler{})

	first := dial(t, acc)
	require.Eventually(t, func() bool { return acc.Active() == 1 }, 2*time.Second, 10*time.Millisecond)

	second := dial(t, acc)
	assert.Contains(t, second.line(), crowdedMessage)
	assert.Equal(t, 1, acc.Active())

	first.say("quit")
	assert.Equal(t, "bye", first.line())
	require.Eventually(t, func() bool { return acc.Active() == 0 }, 2*time.Second, 10*time.Millisecond)

	third := dial(t, acc)
	third.say("again")
	assert.Equal(t, "echo: again", third.line())
}

func TestAcceptor_StopUnblocksIdleSessions(t *testing.T) {
	cfg := testTelnetConfig()
	cfg.ReadTimeout = time.Minute
	handler := &echoHandler{}
	acc := NewAcceptor(cfg, handler, zaptest.NewLogger(t))
	go func() { _ = acc.ListenAndServe() }()
	require.Eventually(t, func() bool { return acc.IsRunning() && acc.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	dial(t, acc)
	require.Eventually(t, func() bool { return handler.sessions.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		acc.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop blocked on an idle session")
	}
	assert.Zero(t, acc.Active())
	assert.False(t, acc.IsRunning())
	assert.Equal(t, int32(1), handler.cancelled.Load())
	acc.Stop()
}
