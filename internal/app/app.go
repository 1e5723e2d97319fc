// Package app provides the core application initialization and the
// build pipeline.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/biopage/biopage/internal/config"
	"github.com/biopage/biopage/internal/fetch"
	"github.com/biopage/biopage/internal/normalize"
	"github.com/biopage/biopage/internal/render"
)

// Application holds all application dependencies.
//
// It is created once at startup and shared across CLI commands. Use
// Close() for cleanup on shutdown.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	Fetcher    *fetch.Fetcher
	Normalizer *normalize.Normalizer
	Renderer   *render.Renderer
	startTime  time.Time
}

// New creates and initializes an Application from the given config:
// the logger, the avatar fetcher, the link normalizer with its subtitle
// table, and the page renderer. If any step fails, an error is returned
// and no resources are allocated.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(cfg.HTTPTimeout, cfg.UserAgent)
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Msg("Avatar fetcher initialized")

	app := &Application{
		Config:     cfg,
		Logger:     &logger,
		Fetcher:    fetcher,
		Normalizer: normalize.New(nil),
		Renderer:   renderer,
		startTime:  time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// Close releases application resources.
func (a *Application) Close(ctx context.Context) error {
	if a.Fetcher != nil {
		a.Fetcher.CloseIdleConnections()
	}
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}
