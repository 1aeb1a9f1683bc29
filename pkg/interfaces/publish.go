package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// PublishOptions tunes a single pipeline run.
type PublishOptions struct {
	// Theme selects the raster theme applied to code and table images.
	Theme string
	// CopyToClipboard additionally hands the rendered body to the clipboard
	// transport, for destinations that are pasted into rather than driven.
	CopyToClipboard bool
	// DryRun runs parse, raster, and planning without touching the destination.
	DryRun bool
}

// PublishSummary aggregates the outcome of one pipeline run. Artifact-level
// failures (raster, insertion) are isolated per artifact and reported here
// rather than aborting the run.
type PublishSummary struct {
	Title           string
	Blocks          int
	PlannedEntries  int
	PlacedEntries   int
	RasterFailures  []error
	InsertFailures  []error
	ClipboardError  error
	CoverSet        bool
	HistoryRecordID uuid.UUID
}

// Partial reports whether any artifact failed while the run itself completed.
func (s *PublishSummary) Partial() bool {
	if s == nil {
		return false
	}
	return len(s.RasterFailures) > 0 || len(s.InsertFailures) > 0
}

// PublishService drives the parse → raster → plan → apply pipeline against a
// destination driver, re-runs it on watcher changes, and reconciles a live
// destination against the markdown source of truth.
type PublishService interface {
	Publish(ctx context.Context, path string, driver DestinationDriver, opts PublishOptions) (*PublishSummary, error)
	Resync(ctx context.Context, watch FileWatch, driver DestinationDriver, opts PublishOptions) (*PublishSummary, error)
	Proofread(ctx context.Context, path string, driver DestinationDriver) (DiffResult, error)
}
