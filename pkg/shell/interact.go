package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/eval"
	"src.ember.sh/pkg/eval/vals"
	"src.ember.sh/pkg/parse"
	"src.ember.sh/pkg/store/storedefs"
	"src.ember.sh/pkg/sys"
)

// Configuration for the interactive mode.
type interactCfg struct {
	Prompt string
	Sink   diag.Sink
	// If nil, history is neither recorded nor available.
	Store storedefs.Store
}

// Runs the REPL. Each line is parsed on its own and its statements are
// evaluated in an environment shared by all lines.
func interact(fds [3]*os.File, cfg *interactCfg) error {
	ev := eval.NewEvaler(cfg.Sink)
	env := vals.NewEnv()
	showPrompt := sys.IsATTY(fds[0].Fd())
	reader := bufio.NewReader(fds[0])
	warnedStore := false

	for lineNo := 1; ; lineNo++ {
		if showPrompt {
			fds[1].WriteString(cfg.Prompt)
		}
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				if showPrompt {
					fds[1].WriteString("\n")
				}
				return nil
			}
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			quit := runCommand(fds, cfg, env, trimmed)
			if quit {
				return nil
			}
			continue
		}

		if cfg.Store != nil {
			_, err := cfg.Store.AddCmd(line)
			if err != nil && !warnedStore {
				fmt.Fprintln(fds[2], "Warning: cannot save history:", err)
				warnedStore = true
			}
		}
		evalLine(ev, env, parse.Source{Name: fmt.Sprintf("[repl %d]", lineNo), Code: line},
			fds[1], fds[2])
	}
}

// Evaluates the statements of one line that parsed successfully, printing
// each result. Evaluation of the line stops at a return or a runtime error.
func evalLine(ev *eval.Evaler, env *vals.Env, src parse.Source, stdout, stderr io.Writer) {
	prog, err := parse.Parse(src, parse.Config{Sink: ev.Sink})
	if err != nil {
		diag.ShowError(stderr, err)
	}
	for _, stmt := range prog.Statements {
		switch v := ev.Eval(stmt, env).(type) {
		case nil:
		case *vals.Error:
			diag.Complain(stderr, v.Inspect())
			return
		case *vals.ReturnValue:
			fmt.Fprintln(stdout, v.Inspect())
			return
		default:
			fmt.Fprintln(stdout, v.Inspect())
		}
	}
}

// Runs a REPL command, which starts with ":". It returns whether the REPL
// should quit.
func runCommand(fds [3]*os.File, cfg *interactCfg, env *vals.Env, line string) bool {
	switch name := strings.Fields(line)[0]; name {
	case ":quit":
		return true
	case ":env":
		for _, name := range env.Names() {
			v, _ := env.Get(name)
			fmt.Fprintf(fds[1], "%s = %s\n", name, v.Inspect())
		}
	case ":history":
		showHistory(fds, cfg.Store)
	default:
		diag.Complainf(fds[2], "unknown command %s; available commands are :env, :history and :quit", name)
	}
	return false
}

func showHistory(fds [3]*os.File, st storedefs.Store) {
	if st == nil {
		diag.Complain(fds[2], "history is not available")
		return
	}
	upper, err := st.NextCmdSeq()
	if err == nil {
		var cmds []storedefs.Cmd
		cmds, err = st.CmdsWithSeq(0, upper)
		if err == nil {
			_, width := sys.WinSize(fds[1])
			for _, cmd := range cmds {
				prefix := fmt.Sprintf("%5d  ", cmd.Seq)
				fmt.Fprintln(fds[1], prefix+truncate(cmd.Text, width-len(prefix)))
			}
		}
	}
	if err != nil {
		diag.Complainf(fds[2], "cannot read history: %v", err)
	}
}

// Truncates s to fit in width terminal columns, marking truncation with "…".
// A nonpositive width means no limit.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
