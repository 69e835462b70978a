package testutil

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

// DefaultWait bounds each expectation of a TelnetClient helper.
const DefaultWait = 2 * time.Second

// TelnetClient is a scripted Telnet player for integration tests. Output read
// past a match is kept for the next expectation.
type TelnetClient struct {
	conn    net.Conn
	t       *testing.T
	pending string
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	start := time.Now()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v [%s]", addr, err, time.Since(start))
	}
	t.Cleanup(func() {
		conn.Close()
	})

	t.Logf("telnet client connected to %s [%s]", addr, time.Since(start))
	return &TelnetClient{conn: conn, t: t}
}

// ReadUntil returns the output up to and including the first occurrence of
// substr, waiting at most timeout for it to arrive.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the consumed output, or fails the test on timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	tmp := make([]byte, 1024)
	for {
		if i := strings.Index(c.pending, substr); i >= 0 {
			end := i + len(substr)
			out := c.pending[:end]
			c.pending = c.pending[end:]
			return out
		}
		n, err := c.conn.Read(tmp)
		c.pending += string(tmp[:n])
		if err != nil && !strings.Contains(c.pending, substr) {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, c.pending, err)
		}
	}
}

// Send writes a line of text to the server, appending \r\n.
//
// Precondition: text should not contain trailing newline characters.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Do sends a command and waits for expect in the reply.
func (c *TelnetClient) Do(command, expect string) string {
	c.t.Helper()
	c.Send(command)
	return c.ReadUntil(expect, DefaultWait)
}

// Login answers the name prompt and waits for the first floor overview.
//
// Postcondition: Returns everything the server sent before the overview
// ended, banner included.
func (c *TelnetClient) Login(name string) string {
	c.t.Helper()
	greeting := c.ReadUntil("What is your name", DefaultWait)
	return greeting + c.Do(name, "Type 'enter'")
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}
