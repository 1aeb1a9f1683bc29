// Package publish drives the full pipeline: load and index a markdown file,
// rasterize code and table payloads, plan artifact insertions, and apply them
// against a destination driver.
package publish

import (
	"context"
	"errors"
	"os"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-publisher/internal/history"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/internal/planner"
	"github.com/goliatone/go-publisher/internal/raster"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// ErrWatchStopped signals a resync attempt against a watch that already ended.
var ErrWatchStopped = errors.New("publish: watch is stopped")

// Service implements interfaces.PublishService.
type Service struct {
	loader    interfaces.DocumentLoader
	raster    *raster.Service
	planner   *planner.Planner
	differ    interfaces.Differ
	history   *history.Service
	clipboard interfaces.Clipboard
	logger    interfaces.Logger
}

// Option customises the publish service.
type Option func(*Service)

// WithHistory enables publish-run recording.
func WithHistory(svc *history.Service) Option {
	return func(s *Service) {
		s.history = svc
	}
}

// WithClipboard sets the transport used when a run asks for a clipboard copy.
func WithClipboard(clip interfaces.Clipboard) Option {
	return func(s *Service) {
		s.clipboard = clip
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the pipeline stages together.
func NewService(loader interfaces.DocumentLoader, rasterSvc *raster.Service, plannerSvc *planner.Planner, differ interfaces.Differ, opts ...Option) *Service {
	s := &Service{
		loader:  loader,
		raster:  rasterSvc,
		planner: plannerSvc,
		differ:  differ,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.PublishService = (*Service)(nil)

// Publish runs the pipeline once. Artifact-level failures (a raster job the
// backend rejects, a plan entry the driver refuses) are collected on the
// summary; only destination-level failures abort the run.
func (s *Service) Publish(ctx context.Context, path string, driver interfaces.DestinationDriver, opts interfaces.PublishOptions) (*interfaces.PublishSummary, error) {
	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	// An explicit run option beats the document's own front-matter override.
	if opts.Theme != "" {
		doc.Theme = opts.Theme
	}

	log := logging.WithArticleContext(s.logger, path, "publish")
	log.Info("pipeline start",
		"title", doc.Title,
		"blocks", len(doc.Blocks),
		"raster_jobs", len(doc.RasterJobs),
		"dry_run", opts.DryRun,
	)

	rasterReport := s.raster.Run(ctx, doc)
	doc.Images = append(doc.Images, rasterReport.Images...)

	plan := s.planner.Plan(doc)

	summary := &interfaces.PublishSummary{
		Title:          doc.Title,
		Blocks:         len(doc.Blocks),
		PlannedEntries: len(plan),
		CoverSet:       doc.Cover != nil,
	}
	for _, failure := range rasterReport.Failures {
		summary.RasterFailures = append(summary.RasterFailures, failure)
	}

	if opts.DryRun {
		s.record(ctx, doc, summary, opts)
		log.Info("dry run complete", "planned", len(plan))
		return summary, nil
	}

	if err := driver.ReplaceAllContent(ctx, doc.BodyMarkup()); err != nil {
		return summary, goerrors.Wrap(err, goerrors.CategoryExternal, "replace destination content").
			WithTextCode("DESTINATION_REPLACE_FAILED")
	}

	if doc.Title != "" {
		if err := driver.SetTitle(ctx, doc.Title); err != nil {
			summary.InsertFailures = append(summary.InsertFailures, err)
			log.Warn("title slot rejected", "error", err)
		}
	}
	if doc.Cover != nil {
		if err := driver.SetCover(ctx, doc.Cover.Source); err != nil {
			summary.CoverSet = false
			summary.InsertFailures = append(summary.InsertFailures, err)
			log.Warn("cover slot rejected", "error", err)
		}
	}

	applyReport := s.planner.Apply(ctx, driver, plan)
	summary.PlacedEntries = applyReport.Placed
	for _, failure := range applyReport.Failures {
		summary.InsertFailures = append(summary.InsertFailures, failure)
	}

	if opts.CopyToClipboard {
		if s.clipboard == nil {
			summary.ClipboardError = errors.New("publish: no clipboard transport configured")
		} else if err := s.clipboard.WriteMarkup(doc.BodyMarkup()); err != nil {
			summary.ClipboardError = err
		}
	}

	s.record(ctx, doc, summary, opts)

	log.Info("pipeline complete",
		"placed", summary.PlacedEntries,
		"planned", summary.PlannedEntries,
		"partial", summary.Partial(),
	)

	return summary, nil
}

// Resync blocks until the watch reports the next change (or ctx ends), then
// re-runs the pipeline over the watched file.
func (s *Service) Resync(ctx context.Context, watch interfaces.FileWatch, driver interfaces.DestinationDriver, opts interfaces.PublishOptions) (*interfaces.PublishSummary, error) {
	state := watch.State()
	if !state.Watching {
		return nil, ErrWatchStopped
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case _, ok := <-watch.Events():
		if !ok {
			return nil, ErrWatchStopped
		}
	}

	return s.Publish(ctx, state.Path, driver, opts)
}

// Proofread scrapes the destination body and reports its divergence from the
// markdown source of truth.
func (s *Service) Proofread(ctx context.Context, path string, driver interfaces.DestinationDriver) (interfaces.DiffResult, error) {
	markup, err := driver.ReadCurrentMarkup(ctx)
	if err != nil {
		return interfaces.DiffResult{}, goerrors.Wrap(err, goerrors.CategoryExternal, "read destination content").
			WithTextCode("DESTINATION_READ_FAILED")
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return interfaces.DiffResult{}, goerrors.Wrap(err, goerrors.CategoryValidation, "read markdown source").
			WithTextCode("SOURCE_READ_FAILED")
	}

	return s.differ.Compare(markup, string(source))
}

// record appends to the audit log. History failures never sink a publish.
func (s *Service) record(ctx context.Context, doc *interfaces.Document, summary *interfaces.PublishSummary, opts interfaces.PublishOptions) {
	record, err := s.history.Record(ctx, doc, summary, doc.Theme, opts.DryRun)
	if err != nil {
		s.logger.Warn("history record failed", "path", doc.Path, "error", err)
		return
	}
	if record != nil {
		summary.HistoryRecordID = record.ID
	}
}
