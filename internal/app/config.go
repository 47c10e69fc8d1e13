package app

import (
	"errors"
	"fmt"
)

// Diagnostic output styles.
const (
	DiagnosticsLine   = "line"
	DiagnosticsPretty = "pretty"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // a layout file or a directory of layout files
	OutDir     string
	TablesPath string // optional table file merged over the built-ins

	Diagnostics string
	Watch       bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	switch cfg.Diagnostics {
	case "":
		cfg.Diagnostics = DiagnosticsLine
	case DiagnosticsLine, DiagnosticsPretty:
	default:
		return nil, fmt.Errorf("invalid diagnostics format %q: must be %q or %q", cfg.Diagnostics, DiagnosticsLine, DiagnosticsPretty)
	}
	return &cfg, nil
}
