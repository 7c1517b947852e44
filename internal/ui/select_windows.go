//go:build windows

package ui

import (
	"io"
)

// Select is responsible for determining the specific UI given select user option, the current platform
// config values, and environment status (such as a TTY being present). There is no dynamic terminal UI
// on windows, so the logger UI is always used. A writer is provided to capture the output of the final
// report.
func Select(_, _ bool, reportWriter io.Writer) UI {
	return NewLoggerUI(reportWriter)
}
