package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/eval"
	"src.ember.sh/pkg/eval/vals"
	"src.ember.sh/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd         bool
	CompileOnly bool
	JSON        bool
	Sink        diag.Sink
}

// Runs a script, or code given with -c. The value of the script is printed
// unless it is nil; a runtime error is printed to stderr and results in exit
// status 1. Parse errors result in exit status 2 and nothing is evaluated.
func script(fds [3]*os.File, arg string, cfg *scriptCfg) int {
	var src parse.Source
	if cfg.Cmd {
		src = parse.Source{Name: "code from -c", Code: arg}
	} else {
		var err error
		src, err = ReadSource(arg)
		if err != nil {
			fmt.Fprintln(fds[2], err)
			return 2
		}
	}

	if cfg.CompileOnly {
		_, err := parse.Parse(src, parse.Config{Sink: cfg.Sink})
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}

	ev := eval.NewEvaler(cfg.Sink)
	v, err := ev.EvalSource(src, vals.NewEnv())
	if err != nil {
		diag.ShowError(fds[2], err)
		return 2
	}
	if e, ok := v.(*vals.Error); ok {
		diag.Complain(fds[2], e.Inspect())
		return 1
	}
	if v != nil {
		fmt.Fprintln(fds[1], v.Inspect())
	}
	return 0
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

// ReadSource reads the script at path. The name of the returned Source is the
// absolute path.
func ReadSource(path string) (parse.Source, error) {
	name, err := filepath.Abs(path)
	if err != nil {
		return parse.Source{}, fmt.Errorf("cannot get full path of script %q: %w", path, err)
	}
	code, err := readFileUTF8(name)
	if err != nil {
		return parse.Source{}, fmt.Errorf("cannot read script %q: %w", name, err)
	}
	return parse.Source{Name: name, Code: code, IsFile: true}, nil
}

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts parse errors into JSON. Lines and columns are 0-based.
func errorsToJSON(parseErr error) []byte {
	converted := []errorInJSON{}
	for _, e := range parse.UnpackErrors(parseErr) {
		r := e.Range()
		converted = append(converted,
			errorInJSON{e.Context.Name, r.Line, r.From, r.To, e.Message})
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
