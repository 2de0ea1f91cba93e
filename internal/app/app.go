package app

import (
	"io"
	"log/slog"

	"github.com/Terria-K/cluttered/internal/config"
	"github.com/Terria-K/cluttered/internal/hcl_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders *config.Registry
}

// DefaultLoaders returns the request file loaders compiled into the binary.
func DefaultLoaders() []config.Loader {
	return []config.Loader{
		config.JSONLoader{},
		config.TOMLLoader{},
		config.RONLoader{},
		hcl_adapter.NewLoader(),
	}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger. When no loaders are given
// the DefaultLoaders are registered.
func NewApp(outW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = DefaultLoaders()
	}
	reg := config.NewRegistry(loaders...)
	logger.Debug("Request loaders registered.", "extensions", reg.Extensions())

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: reg,
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
