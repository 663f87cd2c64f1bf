// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gold-trackers/goldwatch/internal/config"
	"github.com/gold-trackers/goldwatch/internal/extract"
	"github.com/gold-trackers/goldwatch/internal/ratelimit"
	"github.com/gold-trackers/goldwatch/internal/render"
	"github.com/gold-trackers/goldwatch/internal/scrape"
	"github.com/gold-trackers/goldwatch/internal/store"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
type Application struct {
	Config       *config.Config
	Logger       *zerolog.Logger
	Renderer     *render.Renderer
	Engine       *extract.Engine
	Limiter      ratelimit.RateLimiter
	Store        store.Store
	Orchestrator *scrape.Orchestrator
	startTime    time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It configures logging, opens the persisted store, and wires the renderer,
// extraction engine, attempt pacer, and retry orchestrator together. If any
// step fails, an error is returned and no resources are allocated.
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

	st, err := store.Open(cfg.StorePath, cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug().Str("path", cfg.StorePath).Msg("Persisted store opened")

	limiter := ratelimit.NewHostLimiter(cfg.AttemptRateRPS, cfg.AttemptBurst)

	renderer := render.New()
	engine := extract.NewEngine()

	baseOpts := render.Options{
		URL:             cfg.TargetURL,
		NavTimeout:      cfg.NavTimeout,
		ReadyTimeout:    cfg.ReadyTimeout,
		ScrollSteps:     cfg.ScrollSteps,
		ScrollPause:     cfg.ScrollPause,
		UserAgent:       cfg.UserAgent,
		Locale:          cfg.Locale,
		Timezone:        cfg.Timezone,
		Latitude:        cfg.Latitude,
		Longitude:       cfg.Longitude,
		WindowWidth:     cfg.WindowWidth,
		WindowHeight:    cfg.WindowHeight,
		ChromePath:      cfg.ChromePath,
		MaxPayloads:     cfg.MaxPayloads,
		MaxPayloadBytes: cfg.MaxPayloadBytes,
	}
	attempter := scrape.NewPageAttempter(renderer, engine, baseOpts, cfg.DebugDir)
	orchestrator := scrape.NewOrchestrator(attempter, limiter, cfg.TargetURL, scrape.DefaultLadder(), cfg.RetryPause)

	logger.Info().Str("url", cfg.TargetURL).Msg("Application initialized successfully")

	return &Application{
		Config:       cfg,
		Logger:       &logger,
		Renderer:     renderer,
		Engine:       engine,
		Limiter:      limiter,
		Store:        st,
		Orchestrator: orchestrator,
		startTime:    time.Now(),
	}, nil
}

// Close gracefully shuts down the application. Render contexts are created
// and torn down per attempt, so there is nothing long-lived to release beyond
// logging the run duration.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Info().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
