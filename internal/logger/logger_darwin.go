//go:build darwin

package logger

import (
	"os"

	"golang.org/x/sys/unix"
)

const SupportsColorEscapes = true

func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	fd := int(file.Fd())

	if _, err := unix.IoctlGetTermios(fd, unix.TIOCGETA); err != nil {
		return
	}
	info.IsTTY = true
	info.UseColorEscapes = !hasNoColorEnvironmentVariable()

	if ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err == nil {
		info.Width = int(ws.Col)
		info.Height = int(ws.Row)
	}
	return
}
