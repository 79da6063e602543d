package shell

import (
	"os"
	"path/filepath"

	"src.ember.sh/pkg/env"
)

const (
	rcFileName = "rc.yaml"
	dbFileName = "db.bolt"
)

// RCPath returns the path of rc.yaml, read in interactive mode. It is
// $XDG_CONFIG_HOME/ember/rc.yaml, falling back to ~/.config/ember/rc.yaml.
func RCPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ember", rcFileName), nil
}

// DBPath returns the default path of the history database and makes sure that
// its directory exists. It is $XDG_STATE_HOME/ember/db.bolt, falling back to
// ~/.local/state/ember/db.bolt.
func DBPath() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "ember")
	err = os.MkdirAll(dir, 0700)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func stateDir() (string, error) {
	if dir := os.Getenv(env.XDG_STATE_HOME); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state"), nil
}
