// Package ansi provides ANSI escape code constants and helpers for terminal output.
// All colored/styled command output should reference these constants to avoid duplication.
package ansi

import xansi "github.com/charmbracelet/x/ansi"

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)

// Strip removes every escape sequence from s, leaving the printable text.
func Strip(s string) string {
	return xansi.Strip(s)
}

// Width returns the number of terminal columns s occupies once escape
// sequences are removed.
func Width(s string) int {
	return xansi.StringWidth(s)
}
