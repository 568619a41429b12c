package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string
	LogLevel  string

	// Command and Args are used by cmd/tool.
	Command string
	Args    []string

	// Select switches to selection mode (cmd/select-tool): every name in
	// Selections is parsed from Args and run in order.
	Select     bool
	Selections []string
}

func NewConfig(cfg Config) (*Config, error) {
	if !cfg.Select && cfg.Command == "" {
		return nil, errors.New("Command is a required configuration field and cannot be empty")
	}
	if cfg.Select && len(cfg.Selections) == 0 {
		return nil, errors.New("at least one selection must be enabled")
	}
	return &cfg, nil
}
