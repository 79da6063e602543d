// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.ember.sh/pkg/store/storedefs"
)

var (
	cmds     = []string{"let a = 1;", "a + 1", "let f = fn(x) { x };", "f(a)"}
	wantCmds = []storedefs.Cmd{
		{Text: "let a = 1;", Seq: 1},
		{Text: "a + 1", Seq: 2},
		{Text: "let f = fn(x) { x };", Seq: 3},
		{Text: "f(a)", Seq: 4},
	}
)

// TestCmd tests the command history functionality of a Store. The store must
// be empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil",
			startSeq, err, 1)
	}

	// AddCmd
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> %v, %v, want %v, nil",
				cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil",
			endSeq, err, wantedEndSeq)
	}

	// CmdsWithSeq
	wantCmdWithSeqs := map[[2]int][]storedefs.Cmd{
		{1, 5}: wantCmds,
		{2, 4}: wantCmds[1:3],
		{3, 3}: nil,
		{5, 9}: nil,
	}
	for r, want := range wantCmdWithSeqs {
		got, err := store.CmdsWithSeq(r[0], r[1])
		if err != nil {
			t.Errorf("store.CmdsWithSeq(%v, %v) -> error %v", r[0], r[1], err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("store.CmdsWithSeq(%v, %v) (-want +got):\n%s", r[0], r[1], diff)
		}
	}

	// Cmd
	for i, want := range cmds {
		seq := i + startSeq
		got, err := store.Cmd(seq)
		if got != want || err != nil {
			t.Errorf("store.Cmd(%v) -> %q, %v, want %q, nil", seq, got, err, want)
		}
	}
	if _, err := store.Cmd(100); !matchErr(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("store.Cmd(100) -> error %v, want %v", err, storedefs.ErrNoMatchingCmd)
	}

	// PrevCmd and NextCmd
	prevTests := []struct {
		upto   int
		prefix string
		want   storedefs.Cmd
		err    error
	}{
		{5, "", wantCmds[3], nil},
		{100, "let", wantCmds[2], nil},
		{3, "let", wantCmds[0], nil},
		{1, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{5, "nope", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
	}
	for _, tc := range prevTests {
		got, err := store.PrevCmd(tc.upto, tc.prefix)
		if got != tc.want || !matchErr(err, tc.err) {
			t.Errorf("store.PrevCmd(%v, %q) -> %v, %v, want %v, %v",
				tc.upto, tc.prefix, got, err, tc.want, tc.err)
		}
	}
	nextTests := []struct {
		from   int
		prefix string
		want   storedefs.Cmd
		err    error
	}{
		{1, "", wantCmds[0], nil},
		{2, "let", wantCmds[2], nil},
		{4, "f", wantCmds[3], nil},
		{5, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
	}
	for _, tc := range nextTests {
		got, err := store.NextCmd(tc.from, tc.prefix)
		if got != tc.want || !matchErr(err, tc.err) {
			t.Errorf("store.NextCmd(%v, %q) -> %v, %v, want %v, %v",
				tc.from, tc.prefix, got, err, tc.want, tc.err)
		}
	}

	// DelCmd
	if err := store.DelCmd(1); err != nil {
		t.Error("Failed to remove cmd")
	}
	if seq, err := store.Cmd(1); !matchErr(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("Cmd(1) -> %v, %v, want ErrNoMatchingCmd", seq, err)
	}
	if err := store.DelCmd(100); err != nil {
		t.Errorf("DelCmd(100) -> %v, want nil", err)
	}
}

func matchErr(e1, e2 error) bool {
	return (e1 == nil && e2 == nil) || (e1 != nil && e2 != nil && e1.Error() == e2.Error())
}
