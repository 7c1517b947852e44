//go:build linux || darwin

package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Select is responsible for determining the specific UI given select user option, the current platform
// config values, and environment status (such as a TTY being present). A writer is provided to capture
// the output of the final report.
func Select(verbose, quiet bool, reportWriter io.Writer) UI {
	isStdoutATty := term.IsTerminal(int(os.Stdout.Fd()))
	isStderrATty := term.IsTerminal(int(os.Stderr.Fd()))
	notATerminal := !isStderrATty && !isStdoutATty

	switch {
	case verbose || quiet || notATerminal || !isStderrATty:
		return NewLoggerUI(reportWriter)
	default:
		return NewEphemeralTerminalUI(reportWriter)
	}
}
