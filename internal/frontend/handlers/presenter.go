// Package handlers connects exploration sessions to text frontends: it
// renders session state, parses commands, and drives the command loop over
// a console or a Telnet connection.
package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/crawl/internal/frontend/telnet"
)

// Presenter is the output channel and input source of a session. Display
// shows text that may span several newline-separated lines; AwaitChoice
// blocks for the player's next line of input.
type Presenter interface {
	Display(text string) error
	AwaitChoice() (string, error)
}

// ConsolePresenter reads lines from an io.Reader and writes to an io.Writer.
type ConsolePresenter struct {
	in     *bufio.Scanner
	out    io.Writer
	prompt string
}

// NewConsolePresenter creates a presenter over in and out that shows prompt
// before each read.
func NewConsolePresenter(in io.Reader, out io.Writer, prompt string) *ConsolePresenter {
	return &ConsolePresenter{in: bufio.NewScanner(in), out: out, prompt: prompt}
}

// Display writes text followed by a newline.
func (p *ConsolePresenter) Display(text string) error {
	_, err := fmt.Fprintln(p.out, text)
	return err
}

// AwaitChoice writes the prompt and reads one line.
//
// Postcondition: Returns io.EOF when the input is exhausted.
func (p *ConsolePresenter) AwaitChoice() (string, error) {
	if _, err := io.WriteString(p.out, p.prompt); err != nil {
		return "", err
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// TelnetPresenter adapts a Telnet connection.
type TelnetPresenter struct {
	conn   *telnet.Conn
	prompt string
}

// NewTelnetPresenter wraps conn.
//
// Precondition: conn must be non-nil.
func NewTelnetPresenter(conn *telnet.Conn, prompt string) *TelnetPresenter {
	return &TelnetPresenter{conn: conn, prompt: prompt}
}

// Display writes each line of text terminated by CRLF.
func (p *TelnetPresenter) Display(text string) error {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if err := p.conn.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// AwaitChoice writes the prompt and reads one line.
func (p *TelnetPresenter) AwaitChoice() (string, error) {
	if err := p.conn.WritePrompt(p.prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	line, err := p.conn.ReadLine()
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return line, nil
}
