//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

// colorOutput reports whether diagnostics written to stream may be colored.
// Consoles before Windows 10 do not understand escape sequences, newer ones
// need virtual terminal processing switched on.
func colorOutput(stream *os.File) bool {
	if windows.RtlGetVersion().MajorVersion < 10 || !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	const enableVirtualTerminalProcessing uint32 = 0x4

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return mode&enableVirtualTerminalProcessing != 0 ||
		windows.SetConsoleMode(h, mode|enableVirtualTerminalProcessing) == nil
}
