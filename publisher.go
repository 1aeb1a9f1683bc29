package publisher

import (
	"context"

	"github.com/goliatone/go-publisher/internal/di"
	"github.com/goliatone/go-publisher/internal/history"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// PublishService exports the pipeline contract for consumers of the publisher package.
type PublishService = interfaces.PublishService

// PublishOptions exports the per-run pipeline options.
type PublishOptions = interfaces.PublishOptions

// PublishSummary exports the per-run outcome report.
type PublishSummary = interfaces.PublishSummary

// DestinationDriver exports the destination contract hosts implement to
// receive published content.
type DestinationDriver = interfaces.DestinationDriver

// Rasterizer exports the code/table image renderer contract.
type Rasterizer = interfaces.Rasterizer

// Clipboard exports the clipboard transport contract.
type Clipboard = interfaces.Clipboard

// FileWatch exports a running watch on a markdown source file.
type FileWatch = interfaces.FileWatch

// SyncState exports the watcher's published view of a watched file.
type SyncState = interfaces.SyncState

// DiffResult exports the source/destination divergence report.
type DiffResult = interfaces.DiffResult

// Document exports the positioned block model produced by the indexer.
type Document = interfaces.Document

// HistoryService exports the publish-run audit log contract.
type HistoryService = *history.Service

// PublishRecord exports one row of the publish-run audit log.
type PublishRecord = history.PublishRecord

// Module represents the top level publisher runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a publisher module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Publisher returns the assembled publish pipeline.
func (m *Module) Publisher() PublishService {
	return m.container.PublishService()
}

// Loader returns the configured markdown document loader.
func (m *Module) Loader() interfaces.DocumentLoader {
	return m.container.Loader()
}

// Differ returns the configured content differ.
func (m *Module) Differ() interfaces.Differ {
	return m.container.Differ()
}

// History returns the publish-run audit log; nil-safe to use even when
// history is disabled.
func (m *Module) History() HistoryService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.History()
}

// Watch opens a change watch on path using the configured backend.
func (m *Module) Watch(path string) (FileWatch, error) {
	return m.container.NewWatch(path)
}

// EnsureSchema prepares backing stores the module owns. Safe to call on
// every startup.
func (m *Module) EnsureSchema(ctx context.Context) error {
	return m.container.EnsureHistorySchema(ctx)
}

// Close releases resources the module created itself.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
