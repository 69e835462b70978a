// Package telnet provides the Telnet listener, line protocol and ANSI
// styling used by the crawl server.
package telnet

import (
	"fmt"
	"regexp"
)

// sgr builds a Select Graphic Rendition escape for code.
func sgr(code string) string { return "\033[" + code + "m" }

// Text styles. Styles concatenate, e.g. Bold+BrightWhite.
var (
	Reset = sgr("0")
	Bold  = sgr("1")
	Dim   = sgr("2")

	Red     = sgr("31")
	Green   = sgr("32")
	Yellow  = sgr("33")
	Magenta = sgr("35")
	Cyan    = sgr("36")
	White   = sgr("37")

	BrightRed     = sgr("91")
	BrightGreen   = sgr("92")
	BrightYellow  = sgr("93")
	BrightMagenta = sgr("95")
	BrightCyan    = sgr("96")
	BrightWhite   = sgr("97")
)

var sgrPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Colorize wraps text in style and a trailing Reset.
func Colorize(style, text string) string {
	return style + text + Reset
}

// Colorf formats its arguments and wraps the result in style.
func Colorf(style, format string, args ...any) string {
	return Colorize(style, fmt.Sprintf(format, args...))
}

// StripANSI removes SGR escapes, leaving the printable text.
func StripANSI(s string) string {
	return sgrPattern.ReplaceAllLiteralString(s, "")
}

// VisibleLen is the printable length of s in bytes once styling is removed.
func VisibleLen(s string) int {
	return len(StripANSI(s))
}
