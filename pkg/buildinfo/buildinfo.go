// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.ember.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"src.ember.sh/pkg/prog"
)

// VersionBase is the version of ember without any suffix. On development
// commits, it identifies the next release.
const VersionBase = "0.1.0"

// VCSOverride may be set to a string like "20220401235958-123456789012" to
// stand in for the VCS information embedded by the Go toolchain.
var VCSOverride string

// Reproducible identifies whether the build is reproducible.
var Reproducible = "false"

// Type contains all the build information fields.
type Type struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

// Value contains all the build information.
var Value = Type{
	Version:      devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	GoVersion:    runtime.Version(),
	Reproducible: Reproducible == "true",
}

func devVersion(next, vcsOverride string, f func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := f()
	if !ok {
		return fallback
	}
	// If the main module's version is known, use it.
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}
	var revision, timestamp string
	modified := false
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			timestamp = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" || timestamp == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := fmt.Sprintf("%s-dev.0.%s-%s",
		next, t.UTC().Format("20060102150405"), revision)
	if modified {
		version += "-dirty"
	}
	return version
}

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	switch {
	case f.BuildInfo:
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			fmt.Fprintln(fds[1], "Reproducible build:", Value.Reproducible)
		}
	case f.Version:
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNotSuitable
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
