package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseResult is one input line split into a command word and arguments.
type ParseResult struct {
	// Command is the first word, lowercased.
	Command string
	Args    []string
	// RawArgs is everything after the command word with its inner spacing
	// intact, for free-text riddle answers.
	RawArgs string
}

// Parse splits line at the first run of whitespace. An empty or blank line
// yields the zero ParseResult.
func Parse(line string) ParseResult {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	if word == "" {
		return ParseResult{}
	}
	p := ParseResult{Command: strings.ToLower(word), RawArgs: strings.TrimSpace(rest)}
	if p.RawArgs != "" {
		p.Args = strings.Fields(p.RawArgs)
	}
	return p
}

// Errors returned for malformed command arguments.
var (
	ErrMissingArgument = errors.New("an argument is required")
	ErrNotANumber      = errors.New("expected a whole number")
)

// IntArg parses the first argument as an integer. A bad value is reported
// as ErrNotANumber wrapped with the offending text.
func (p ParseResult) IntArg() (int, error) {
	if len(p.Args) == 0 {
		return 0, ErrMissingArgument
	}
	n, err := strconv.Atoi(p.Args[0])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", p.Args[0], ErrNotANumber)
	}
	return n, nil
}
