// Package shell is the entry point for the script runner and the REPL.
package shell

import (
	"fmt"
	"io"
	"log"
	"os"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/logutil"
	"src.ember.sh/pkg/prog"
	"src.ember.sh/pkg/store"
	"src.ember.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It always runs, so it should be the last
// subprogram in a prog.Composite.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) == 0 {
		if f.CodeInArg {
			return prog.BadUsage("-c requires an argument")
		}
		if f.CompileOnly {
			return prog.BadUsage("-compileonly requires a script or -c")
		}
	}
	if len(args) > 1 {
		return prog.BadUsage("at most one script may be given")
	}

	if len(args) == 1 {
		level := diag.SevMessage
		if f.LogLevel != nil {
			level = *f.LogLevel
		}
		exit := script(fds, args[0], &scriptCfg{
			Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, JSON: f.JSON,
			Sink: logSink(level)})
		return prog.Exit(exit)
	}

	rc := RC{Prompt: defaultPrompt}
	if !f.NoRc {
		rcPath := f.RC
		if rcPath == "" {
			var err error
			rcPath, err = RCPath()
			if err != nil {
				fmt.Fprintln(fds[2], "Warning:", err)
			}
		}
		if rcPath != "" {
			var err error
			rc, err = LoadRC(rcPath)
			if err != nil {
				fmt.Fprintln(fds[2], "Warning:", err)
			}
		}
	}

	level := rc.Severity()
	if f.LogLevel != nil {
		level = *f.LogLevel
	}
	sink := logSink(level)
	if rc.ShowWarnings {
		sink = diag.Tee(sink, stderrSink(fds[2]))
	}

	st := openStore(fds[2], f.DB, rc.History)
	if st != nil {
		defer st.Close()
	}
	var history storedefs.Store
	if st != nil {
		history = st
	}

	cleanup := initSignal(fds[2])
	defer cleanup()
	return interact(fds, &interactCfg{Prompt: rc.Prompt, Sink: sink, Store: history})
}

// Returns the sink that language diagnostics go to. It writes to the debug
// log, which is discarded unless -log is given.
func logSink(min diag.Severity) diag.Sink {
	return diag.NewLoggerSink(logutil.GetLogger("[diag] "), min)
}

// Returns a sink that prints warnings and errors to stderr.
func stderrSink(w io.Writer) diag.Sink {
	return diag.NewLoggerSink(log.New(w, "", 0), diag.SevWarning)
}

// Opens the history store. Failure is not fatal: the REPL then runs without
// history.
func openStore(stderr io.Writer, flagPath, rcPath string) store.DBStore {
	path := flagPath
	if path == "" {
		path = rcPath
	}
	if path == "" {
		var err error
		path, err = DBPath()
		if err != nil {
			fmt.Fprintln(stderr, "Warning:", err)
			fmt.Fprintln(stderr, "History will not be saved.")
			return nil
		}
	}
	st, err := store.NewStore(path)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot open history database:", err)
		fmt.Fprintln(stderr, "History will not be saved.")
		return nil
	}
	logger.Println("opened history database", path)
	return st
}
