package telnet

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"sync"
	"time"
)

// MaxLineLength bounds a single input line. Longer lines are discarded up to
// their terminator and reported as ErrLineTooLong.
const MaxLineLength = 512

// ErrLineTooLong is returned by ReadLine for oversized input.
var ErrLineTooLong = errors.New("input line too long")

// Telnet command bytes (RFC 854) and the options the server mentions.
const (
	SE   byte = 240
	NOP  byte = 241
	GA   byte = 249
	SB   byte = 250
	WILL byte = 251
	WONT byte = 252
	DO   byte = 253
	DONT byte = 254
	IAC  byte = 255

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// iacState tracks where a byte stream stands inside a command sequence.
type iacState uint8

const (
	stData    iacState = iota
	stCommand          // saw IAC
	stOption           // saw IAC WILL/WONT/DO/DONT
	stSub              // inside IAC SB ... IAC SE
	stSubIAC           // saw IAC inside a subnegotiation
)

// step feeds one byte through the filter. It returns the next state and
// whether b (or an escaped 0xFF) is data for the caller.
func (s iacState) step(b byte) (iacState, bool) {
	switch s {
	case stCommand:
		switch b {
		case IAC:
			return stData, true
		case WILL, WONT, DO, DONT:
			return stOption, false
		case SB:
			return stSub, false
		}
		return stData, false
	case stOption:
		return stData, false
	case stSub:
		if b == IAC {
			return stSubIAC, false
		}
		return stSub, false
	case stSubIAC:
		if b == SE {
			return stData, false
		}
		return stSub, false
	}
	if b == IAC {
		return stCommand, false
	}
	return stData, true
}

// FilterIAC removes Telnet command sequences from raw input. An escaped
// IAC IAC pair yields a single 0xFF.
func FilterIAC(input []byte) []byte {
	out := make([]byte, 0, len(input))
	st := stData
	for _, b := range input {
		var keep bool
		if st, keep = st.step(b); keep {
			out = append(out, b)
		}
	}
	return out
}

// Conn is a line-oriented Telnet session over a TCP connection. Reads are
// expected from a single goroutine; writes may come from any.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader
	state  iacState

	wmu          sync.Mutex
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps raw. A zero timeout disables the matching deadline.
//
// Precondition: raw must be an open connection.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate offers to suppress go-ahead. Echo stays with the client so the
// player sees what they type.
func (c *Conn) Negotiate() error {
	return c.Write([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine returns the next line of text without its terminator. CR, LF and
// CRLF all end a line. Control characters other than tab are dropped.
//
// Postcondition: On io.EOF the partial line read so far is returned with
// the error.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	var line strings.Builder
	overflow := false
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return line.String(), err
		}
		var data bool
		if c.state, data = c.state.step(b); !data {
			continue
		}
		if b == '\r' || b == '\n' {
			if b == '\r' {
				if next, err := c.reader.Peek(1); err == nil && next[0] == '\n' {
					_, _ = c.reader.ReadByte()
				}
			}
			break
		}
		if b < ' ' && b != '\t' {
			continue
		}
		if line.Len() >= MaxLineLength {
			overflow = true
			continue
		}
		line.WriteByte(b)
	}
	if overflow {
		return "", ErrLineTooLong
	}
	return line.String(), nil
}

// Write sends data as is.
func (c *Conn) Write(data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(data)
	return err
}

// WriteLine sends text terminated by CRLF.
func (c *Conn) WriteLine(text string) error {
	return c.Write([]byte(text + "\r\n"))
}

// WritePrompt sends text with no terminator.
func (c *Conn) WritePrompt(prompt string) error {
	return c.Write([]byte(prompt))
}

// Close closes the connection. A blocked ReadLine returns an error.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr returns the client's address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}
