package di

import (
	"context"
	"database/sql"
	"fmt"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-publisher/internal/adapters/clipboard"
	"github.com/goliatone/go-publisher/internal/adapters/noop"
	"github.com/goliatone/go-publisher/internal/differ"
	"github.com/goliatone/go-publisher/internal/history"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/internal/logging/gologger"
	"github.com/goliatone/go-publisher/internal/markdown"
	"github.com/goliatone/go-publisher/internal/planner"
	"github.com/goliatone/go-publisher/internal/publish"
	"github.com/goliatone/go-publisher/internal/raster"
	"github.com/goliatone/go-publisher/internal/runtimeconfig"
	"github.com/goliatone/go-publisher/internal/watcher"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Container wires module dependencies. Hosts override adapters through
// options; everything else is assembled from configuration.
type Container struct {
	Config runtimeconfig.Config

	provider    interfaces.LoggerProvider
	rasterizer  interfaces.Rasterizer
	destination interfaces.DestinationDriver
	clipboard   interfaces.Clipboard

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loader     interfaces.DocumentLoader
	plannerSvc *planner.Planner
	rasterSvc  *raster.Service
	differSvc  interfaces.Differ
	historySvc *history.Service
	publishSvc interfaces.PublishService
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider built from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.provider = provider
	}
}

// WithRasterizer binds the renderer that turns code and table payloads into images.
func WithRasterizer(r interfaces.Rasterizer) Option {
	return func(c *Container) {
		c.rasterizer = r
	}
}

// WithDestination binds the driver for the rich-text surface that receives content.
func WithDestination(d interfaces.DestinationDriver) Option {
	return func(c *Container) {
		c.destination = d
	}
}

// WithClipboard overrides the default OS clipboard transport.
func WithClipboard(clip interfaces.Clipboard) Option {
	return func(c *Container) {
		c.clipboard = clip
	}
}

// WithBunDB supplies the database backing the publish history. The caller
// retains ownership of the connection.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
		c.ownsDB = false
	}
}

// WithCache enables repository caching for history lookups.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithDiffer overrides the default content differ binding.
func WithDiffer(d interfaces.Differ) Option {
	return func(c *Container) {
		c.differSvc = d
	}
}

// WithPublishService overrides the assembled publish service binding.
func WithPublishService(svc interfaces.PublishService) Option {
	return func(c *Container) {
		c.publishSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:     cfg,
		rasterizer: noop.Rasterizer(),
		clipboard:  clipboard.New(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureHistory(); err != nil {
		return nil, err
	}
	if err := c.configurePipeline(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.provider != nil || !c.Config.Logging.Enabled {
		return nil
	}
	if c.Config.Logging.Provider == "noop" {
		return nil
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
	})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	c.provider = provider
	return nil
}

func (c *Container) configureHistory() error {
	if !c.Config.History.Enabled {
		return nil
	}

	if c.bunDB == nil {
		sqldb, err := sql.Open("sqlite3", c.Config.History.DSN)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
		c.ownsDB = true
	}

	repo := history.NewBunHistoryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.historySvc = history.NewService(repo, history.WithLogger(logging.HistoryLogger(c.provider)))
	return nil
}

func (c *Container) configurePipeline() error {
	if c.loader == nil {
		indexer := markdown.NewIndexer(markdown.WithHardWraps(c.Config.Markdown.HardWraps))
		loaderOpts := []markdown.LoaderOption{
			markdown.WithLoaderLogger(logging.MarkdownLogger(c.provider)),
		}
		if c.Config.Markdown.BasePath != "" {
			loaderOpts = append(loaderOpts, markdown.WithBasePath(c.Config.Markdown.BasePath))
		}
		c.loader = markdown.NewLoader(indexer, loaderOpts...)
	}

	if c.plannerSvc == nil {
		tiebreak, err := planner.ParseTiebreak(c.Config.Planner.Tiebreak)
		if err != nil {
			return err
		}
		c.plannerSvc = planner.New(
			planner.WithTiebreak(tiebreak),
			planner.WithLogger(logging.PlannerLogger(c.provider)),
		)
	}

	if c.rasterSvc == nil {
		rasterOpts := []raster.ServiceOption{
			raster.WithServiceLogger(logging.RasterLogger(c.provider)),
		}
		if c.Config.Raster.Theme != "" {
			rasterOpts = append(rasterOpts, raster.WithTheme(c.Config.Raster.Theme))
		}
		c.rasterSvc = raster.NewService(c.rasterizer, rasterOpts...)
	}

	if c.differSvc == nil {
		c.differSvc = differ.New(differ.WithLogger(logging.DifferLogger(c.provider)))
	}

	if c.publishSvc == nil {
		publishOpts := []publish.Option{
			publish.WithClipboard(c.clipboard),
			publish.WithLogger(logging.PipelineLogger(c.provider)),
		}
		if c.historySvc != nil {
			publishOpts = append(publishOpts, publish.WithHistory(c.historySvc))
		}
		c.publishSvc = publish.NewService(c.loader, c.rasterSvc, c.plannerSvc, c.differSvc, publishOpts...)
	}

	return nil
}

// EnsureHistorySchema creates the publish history table when the container
// owns a history store. Safe to call on every startup.
func (c *Container) EnsureHistorySchema(ctx context.Context) error {
	if c.bunDB == nil || !c.Config.History.Enabled {
		return nil
	}
	_, err := c.bunDB.NewCreateTable().
		Model((*history.PublishRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Close releases resources the container created itself. Injected databases
// stay open.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}

// NewWatch opens a change watch on path using the configured backend.
func (c *Container) NewWatch(path string) (interfaces.FileWatch, error) {
	backend := c.Config.Watcher.Backend
	if backend == "" {
		backend = runtimeconfig.WatcherBackendPoll
	}
	return watcher.New(backend, path,
		watcher.WithInterval(c.Config.Watcher.Interval),
		watcher.WithLogger(logging.WatcherLogger(c.provider)),
	)
}

// LoggerProvider exposes the configured logger provider; nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.provider
}

// Loader exposes the configured document loader.
func (c *Container) Loader() interfaces.DocumentLoader {
	return c.loader
}

// Planner exposes the configured insertion planner.
func (c *Container) Planner() *planner.Planner {
	return c.plannerSvc
}

// Raster exposes the configured raster orchestration service.
func (c *Container) Raster() *raster.Service {
	return c.rasterSvc
}

// Differ exposes the configured content differ.
func (c *Container) Differ() interfaces.Differ {
	return c.differSvc
}

// History exposes the publish history service; nil-safe to call even when
// history is disabled.
func (c *Container) History() *history.Service {
	return c.historySvc
}

// PublishService exposes the assembled publish pipeline.
func (c *Container) PublishService() interfaces.PublishService {
	return c.publishSvc
}

// Destination exposes the configured destination driver; nil when the host
// has not bound one.
func (c *Container) Destination() interfaces.DestinationDriver {
	return c.destination
}

// Clipboard exposes the configured clipboard transport.
func (c *Container) Clipboard() interfaces.Clipboard {
	return c.clipboard
}

// Rasterizer exposes the configured rasterizer adapter.
func (c *Container) Rasterizer() interfaces.Rasterizer {
	return c.rasterizer
}
