package testutil

import (
	"os"
	"path/filepath"

	"src.ember.sh/pkg/env"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It returns the path of the directory, with all
// symlinks resolved.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "ember-test")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// TempHome is equivalent to Setenv(c, env.HOME, TempDir(c)), and also points
// XDG_CONFIG_HOME and XDG_STATE_HOME inside it.
func TempHome(c Cleanuper) string {
	home := Setenv(c, env.HOME, TempDir(c))
	Setenv(c, env.XDG_CONFIG_HOME, filepath.Join(home, ".config"))
	Setenv(c, env.XDG_STATE_HOME, filepath.Join(home, ".local", "state"))
	return home
}

// WriteFile writes data to a file under dir, creating all ancestor
// directories. It returns the full path of the file.
func WriteFile(dir, name, data string) string {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		panic(err)
	}
	return path
}
