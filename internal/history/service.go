package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-publisher/internal/identity"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Service records publish runs. A nil *Service is a valid no-op recorder so
// callers can leave history disabled without branching.
type Service struct {
	repo   *BunHistoryRepository
	logger interfaces.Logger
}

// ServiceOption customises the history service.
type ServiceOption func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a history service over the given repository.
func NewService(repo *BunHistoryRepository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record persists the outcome of one publish run and returns the stored row.
func (s *Service) Record(ctx context.Context, doc *interfaces.Document, summary *interfaces.PublishSummary, theme string, dryRun bool) (*PublishRecord, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}

	record := &PublishRecord{
		ID:             identity.PublishRecordUUID(doc.Path, doc.Checksum),
		Path:           doc.Path,
		Slug:           recordSlug(doc),
		Title:          summary.Title,
		Checksum:       doc.Checksum,
		Theme:          theme,
		Blocks:         summary.Blocks,
		PlannedEntries: summary.PlannedEntries,
		PlacedEntries:  summary.PlacedEntries,
		RasterFailures: len(summary.RasterFailures),
		InsertFailures: len(summary.InsertFailures),
		CoverSet:       summary.CoverSet,
		DryRun:         dryRun,
		PublishedAt:    time.Now(),
	}

	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("history: record publish run: %w", err)
	}

	s.logger.Info("publish run recorded",
		"slug", stored.Slug,
		"blocks", stored.Blocks,
		"placed", stored.PlacedEntries,
		"partial", stored.Partial(),
	)

	return stored, nil
}

// List returns every recorded run.
func (s *Service) List(ctx context.Context) ([]*PublishRecord, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}
	return s.repo.List(ctx)
}

// GetBySlug fetches one recorded run by its readable handle.
func (s *Service) GetBySlug(ctx context.Context, handle string) (*PublishRecord, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, handle)
	}
	return s.repo.GetBySlug(ctx, handle)
}

// recordSlug derives a readable handle from the document title (or filename)
// plus a checksum prefix to keep handles unique across revisions.
func recordSlug(doc *interfaces.Document) string {
	base := doc.Title
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
	}

	normalized, err := slug.Normalize(base)
	if err != nil || normalized == "" {
		normalized = "publish"
	}

	suffix := doc.Checksum
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if suffix == "" {
		return normalized
	}
	return normalized + "-" + suffix
}
