package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	publisher "github.com/goliatone/go-publisher"
	"github.com/goliatone/go-publisher/internal/adapters/memory"
	"github.com/goliatone/go-publisher/internal/di"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Options captures configuration for publisher CLI bootstraps.
type Options struct {
	Theme           string
	BasePath        string
	Tiebreak        string
	WatcherBackend  string
	WatcherInterval time.Duration
	HistoryEnabled  bool
	HistoryDSN      string
	LogLevel        string
	LoggerProvider  interfaces.LoggerProvider
	Destination     interfaces.DestinationDriver
	Rasterizer      interfaces.Rasterizer
}

// Module wraps the publisher module and the bindings CLI commands need.
type Module struct {
	Module  *publisher.Module
	Service interfaces.PublishService
	Driver  interfaces.DestinationDriver
	Logger  interfaces.Logger
	Watches func(path string) (interfaces.FileWatch, error)
}

// BuildModule constructs a publisher module configured for CLI operations.
// Without an injected destination the pipeline runs against an in-memory
// driver, so the rendered body reaches the editor via the clipboard.
func BuildModule(opts Options) (*Module, error) {
	cfg := publisher.DefaultConfig()

	if theme := strings.TrimSpace(opts.Theme); theme != "" {
		cfg.Raster.Theme = theme
	}
	if base := strings.TrimSpace(opts.BasePath); base != "" {
		cfg.Markdown.BasePath = base
	}
	if tiebreak := strings.TrimSpace(opts.Tiebreak); tiebreak != "" {
		cfg.Planner.Tiebreak = tiebreak
	}
	if backend := strings.TrimSpace(opts.WatcherBackend); backend != "" {
		cfg.Watcher.Backend = backend
	}
	if opts.WatcherInterval > 0 {
		cfg.Watcher.Interval = opts.WatcherInterval
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if opts.HistoryEnabled {
		cfg.History.Enabled = true
		if dsn := strings.TrimSpace(opts.HistoryDSN); dsn != "" {
			cfg.History.DSN = dsn
		}
	}

	driver := opts.Destination
	if driver == nil {
		driver = memory.New()
	}

	diOpts := []di.Option{di.WithDestination(driver)}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.Rasterizer != nil {
		diOpts = append(diOpts, di.WithRasterizer(opts.Rasterizer))
	}

	module, err := publisher.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise publisher module: %w", err)
	}

	if cfg.History.Enabled {
		if err := module.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("prepare history store: %w", err)
		}
	}

	logger := logging.PipelineLogger(module.Container().LoggerProvider())

	return &Module{
		Module:  module,
		Service: module.Publisher(),
		Driver:  driver,
		Logger:  logger,
		Watches: module.Watch,
	}, nil
}
