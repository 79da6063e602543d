// Package env keeps names of environment variables with special significance to
// ember.
package env

// Environment variables that determine where ember looks for rc.yaml and
// stores its history database.
const (
	HOME            = "HOME"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_STATE_HOME  = "XDG_STATE_HOME"
)
