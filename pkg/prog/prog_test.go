package prog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.ember.sh/pkg/diag"
	"src.ember.sh/pkg/logutil"
	"src.ember.sh/pkg/must"
	. "src.ember.sh/pkg/prog"
	"src.ember.sh/pkg/prog/progtest"
	"src.ember.sh/pkg/testutil"
)

var (
	Test      = progtest.Test
	ThatEmber = progtest.ThatEmber
)

func TestCommonFlagHandling(t *testing.T) {
	dir := testutil.TempDir(t)
	cpuprof := filepath.Join(dir, "cpuprof")

	Test(t, testProgram{},
		ThatEmber("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatEmber("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatEmber("-help").
			WritesStdoutContaining("Usage: ember [flags] [script]"),

		ThatEmber("-cpuprofile", cpuprof).DoesNothing(),
		ThatEmber("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),

		ThatEmber("-log-level", "loud").
			ExitsWith(2).
			WritesStderrContaining(`unknown severity "loud"`),
	)

	// There isn't much to test beyond a sanity check that the profile file
	// now exists.
	_, err := os.Stat(cpuprof)
	if err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestLogFlag(t *testing.T) {
	dir := testutil.TempDir(t)
	logFile := filepath.Join(dir, "log")

	Test(t, testProgram{logMessage: "hello from program"},
		ThatEmber("-log", logFile).DoesNothing(),
	)

	if content := must.ReadFileString(logFile); !strings.Contains(content, "hello from program") {
		t.Errorf("log file content %q doesn't contain the message", content)
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got *Flags
	p := flagsRecorder{&got}
	Test(t, p,
		ThatEmber("-c", "-json", "-compileonly", "-norc", "-rc", "rc.yaml",
			"-db", "db", "-log-level", "warning", "-lsp", "code").
			DoesNothing(),
	)
	if got == nil {
		t.Fatal("program not run")
	}
	if !got.CodeInArg || !got.JSON || !got.CompileOnly || !got.NoRc || !got.LSP {
		t.Errorf("boolean flags not all set: %+v", got)
	}
	if got.RC != "rc.yaml" || got.DB != "db" {
		t.Errorf("string flags not set: %+v", got)
	}
	if got.LogLevel == nil || *got.LogLevel != diag.SevWarning {
		t.Errorf("LogLevel = %v, want warning", got.LogLevel)
	}
}

func TestLogLevelUnsetByDefault(t *testing.T) {
	var got *Flags
	Test(t, flagsRecorder{&got}, ThatEmber().DoesNothing())
	if got.LogLevel != nil {
		t.Errorf("LogLevel = %v, want nil", *got.LogLevel)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatEmber().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatEmber().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatEmber().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatEmber().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatEmber().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatEmber().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatEmber().ExitsWith(0),
	)
}

var logger = logutil.GetLogger("[prog_test] ")

type testProgram struct {
	notSuitable bool
	writeOut    string
	logMessage  string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	if p.logMessage != "" {
		logger.Println(p.logMessage)
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type flagsRecorder struct{ flags **Flags }

func (p flagsRecorder) Run(fds [3]*os.File, f *Flags, args []string) error {
	*p.flags = f
	return nil
}
