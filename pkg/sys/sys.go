// Package sys provides the few OS utilities ember needs: terminal detection,
// terminal size, signal delivery and stack dumps.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 256

// NotifySignals returns a channel on which all signals gets delivered.
func NotifySignals() chan os.Signal { return notifySignals() }

// StopSignals stops the delivery of signals to a channel obtained from
// NotifySignals.
func StopSignals(ch chan os.Signal) { stopSignals(ch) }

// SIGWINCH is the window size change signal.
const SIGWINCH = sigWINCH

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SignalName returns a human-readable name for the signal, such as "SIGHUP".
func SignalName(sig os.Signal) string { return signalName(sig) }
