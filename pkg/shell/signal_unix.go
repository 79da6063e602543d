//go:build !windows && !plan9

package shell

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"src.ember.sh/pkg/sys"
)

// Starts handling signals for the REPL. The returned function stops it.
func initSignal(stderr io.Writer) func() {
	sigCh := sys.NotifySignals()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				if ignoreSignal(sig) {
					continue
				}
				logger.Println("signal", sys.SignalName(sig))
				handleSignal(sig, stderr)
			case <-done:
				return
			}
		}
	}()
	return func() {
		sys.StopSignals(sigCh)
		close(done)
	}
}

func ignoreSignal(sig os.Signal) bool {
	// SIGURG is used internally by the Go runtime and occurs with great
	// frequency.
	return sig == syscall.SIGURG
}

var exit = os.Exit

func handleSignal(sig os.Signal, stderr io.Writer) {
	switch sig {
	case syscall.SIGHUP, syscall.SIGTERM:
		exit(0)
	case syscall.SIGUSR1:
		fmt.Fprint(stderr, sys.DumpStack())
	}
}
