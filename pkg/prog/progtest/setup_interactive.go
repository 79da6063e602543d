//go:build !windows && !plan9

package progtest

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"

	"src.ember.sh/pkg/must"
)

// Interactive holds the file descriptors of a program talking to a terminal.
// Stdin and stdout of the program are the slave end of a pseudo terminal;
// stderr is a plain pipe.
type Interactive struct {
	// Pty is the master end of the pseudo terminal, through which the test
	// types input and reads output.
	Pty *os.File
	tty *os.File

	stderr    *os.File
	getStderr func() string
}

// SetupInteractive opens a pseudo terminal for a test, skipping the test if
// that is impossible. All files are closed when the test finishes.
func SetupInteractive(t *testing.T) *Interactive {
	p, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	must.OK(pty.Setsize(p, &pty.Winsize{Rows: 24, Cols: 80}))
	w, get := capturedOutput()
	t.Cleanup(func() {
		p.Close()
		tty.Close()
		w.Close()
	})
	return &Interactive{Pty: p, tty: tty, stderr: w, getStderr: get}
}

// Fds returns the file descriptors to run a program with.
func (i *Interactive) Fds() [3]*os.File {
	return [3]*os.File{i.tty, i.tty, i.stderr}
}

// Type writes s to the terminal as if typed by the user.
func (i *Interactive) Type(s string) {
	must.OK1(i.Pty.WriteString(s))
}

// Stderr closes the stderr pipe and returns everything written to it.
func (i *Interactive) Stderr() string {
	return i.getStderr()
}

// Recorder accumulates everything the program writes to the terminal.
type Recorder struct {
	mu  sync.Mutex
	buf strings.Builder
}

// Record starts reading the output of the terminal in the background.
func (i *Interactive) Record() *Recorder {
	r := &Recorder{}
	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := i.Pty.Read(buf)
			r.mu.Lock()
			r.buf.Write(buf[:n])
			r.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()
	return r
}

// String returns the output recorded so far.
func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

const waitForTimeout = 5 * time.Second

// WaitFor waits until the recorded output contains s, and fails the test if
// that doesn't happen in time.
func (r *Recorder) WaitFor(t *testing.T, s string) {
	t.Helper()
	deadline := time.Now().Add(waitForTimeout)
	for !strings.Contains(r.String(), s) {
		if time.Now().After(deadline) {
			t.Fatalf("terminal output %q doesn't contain %q", r.String(), s)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
