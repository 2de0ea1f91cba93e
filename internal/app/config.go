package app

import (
	"errors"

	"github.com/Terria-K/cluttered/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string
	LogLevel  string

	// ConfigPath is a request file to load. When empty, Request is used.
	ConfigPath string
	Request    *config.Request
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && cfg.Request == nil {
		return nil, errors.New("either a request file or a build request is required")
	}
	if cfg.ConfigPath != "" && cfg.Request != nil {
		return nil, errors.New("a request file and a build request are mutually exclusive")
	}
	return &cfg, nil
}
