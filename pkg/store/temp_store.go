package store

import (
	"path/filepath"

	"src.ember.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The store is
// closed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(c), "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
