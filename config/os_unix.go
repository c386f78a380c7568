//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// colorOutput reports whether diagnostics written to stream may be colored.
func colorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
