package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "src.ember.sh/pkg/prog/progtest"
	"src.ember.sh/pkg/tt"
)

func TestProgram(t *testing.T) {
	Test(t, Program,
		ThatEmber("-version").WritesStdout(Value.Version+"\n"),
		ThatEmber("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatEmber("-buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v\nGo version: %v\nReproducible build: %v\n",
				Value.Version, Value.GoVersion, Value.Reproducible)),
		ThatEmber("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatEmber().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func vcs(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func TestDevVersion(t *testing.T) {
	const rev = "abcdef0123456789"
	tt.Test(t, tt.Fn("devVersion", func(override string, bi *debug.BuildInfo) string {
		return devVersion("1.2.0", override, func() (*debug.BuildInfo, bool) {
			return bi, bi != nil
		})
	}), tt.Table{
		tt.Args("", (*debug.BuildInfo)(nil)).Rets("1.2.0-dev.unknown"),
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}).
			Rets("1.2.0-dev.unknown"),
		// A module version set by "go install pkg@version" wins.
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "v1.1.0"}}).
			Rets("1.1.0"),
		tt.Args("", vcs(rev, "2026-10-15T08:30:00Z", "false")).
			Rets("1.2.0-dev.0.20261015083000-abcdef012345"),
		tt.Args("", vcs(rev, "2026-10-15T08:30:00+02:00", "true")).
			Rets("1.2.0-dev.0.20261015063000-abcdef012345-dirty"),
		tt.Args("", vcs("abc", "2026-10-15T08:30:00Z", "false")).
			Rets("1.2.0-dev.0.20261015083000-abc"),
		tt.Args("", vcs(rev, "yesterday", "false")).Rets("1.2.0-dev.unknown"),
		tt.Args("", vcs("", "2026-10-15T08:30:00Z", "false")).Rets("1.2.0-dev.unknown"),
		tt.Args("20261015083000-abcdef012345", (*debug.BuildInfo)(nil)).
			Rets("1.2.0-dev.0.20261015083000-abcdef012345"),
	})
}
