package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"src.ember.sh/pkg/diag"
)

const defaultPrompt = "ember> "

// RC is the content of rc.yaml.
type RC struct {
	// Prompt printed before each line when stdin is a terminal.
	Prompt string `yaml:"prompt"`
	// Path of the history database.
	History string `yaml:"history"`
	// Lowest severity of diagnostics written to the debug log.
	LogLevel string `yaml:"log-level"`
	// Whether to also print warnings to stderr.
	ShowWarnings bool `yaml:"show-warnings"`
}

// Severity returns the parsed LogLevel, or diag.SevMessage if it is empty or
// invalid. LoadRC already rejects invalid values.
func (rc RC) Severity() diag.Severity {
	sev, err := diag.ParseSeverity(rc.LogLevel)
	if err != nil {
		return diag.SevMessage
	}
	return sev
}

// LoadRC reads rc.yaml from path. A nonexistent file yields the default RC
// and no error. When the file is invalid, the default RC is returned along
// with the error.
func LoadRC(path string) (RC, error) {
	rc := RC{Prompt: defaultPrompt}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rc, nil
		}
		return rc, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err = dec.Decode(&rc)
	if err != nil && err != io.EOF {
		return RC{Prompt: defaultPrompt}, fmt.Errorf("%s: %w", path, err)
	}
	if rc.LogLevel != "" {
		if _, err := diag.ParseSeverity(rc.LogLevel); err != nil {
			return RC{Prompt: defaultPrompt}, fmt.Errorf("%s: log-level: %w", path, err)
		}
	}
	logger.Printf("loaded %s: %+v", path, rc)
	return rc, nil
}
