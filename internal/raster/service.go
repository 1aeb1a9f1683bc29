// Package raster turns code and table payloads into destination-ready images
// through a pluggable rendering backend.
package raster

import (
	"context"
	"fmt"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// JobFailure records one raster job the backend could not render.
type JobFailure struct {
	Job interfaces.RasterJob
	Err error
}

func (f JobFailure) Error() string {
	return fmt.Sprintf("raster: %s job at block %d: %v", f.Job.Kind, f.Job.BlockIndex, f.Err)
}

func (f JobFailure) Unwrap() error {
	return f.Err
}

// RunReport summarises one pass over a document's raster jobs. Images carry
// content references anchored at the originating block index, ready to merge
// into the insertion plan.
type RunReport struct {
	Images   []interfaces.ImageReference
	Failures []JobFailure
}

// Service drives the raster backend over a document's job table. Failures are
// isolated per job: a payload the backend rejects is reported and skipped, and
// the rest of the document still publishes.
type Service struct {
	rasterizer interfaces.Rasterizer
	theme      string
	logger     interfaces.Logger
}

// ServiceOption customises the raster service.
type ServiceOption func(*Service)

// WithTheme sets the default theme applied when a document carries no override.
func WithTheme(name string) ServiceOption {
	return func(s *Service) {
		s.theme = name
	}
}

// WithServiceLogger attaches a logger.
func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a raster service around the given backend.
func NewService(rasterizer interfaces.Rasterizer, opts ...ServiceOption) *Service {
	s := &Service{
		rasterizer: rasterizer,
		theme:      "monokai",
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run renders every raster job in the document. A document-level theme
// override takes precedence over the configured default.
func (s *Service) Run(ctx context.Context, doc *interfaces.Document) RunReport {
	var report RunReport

	theme := s.theme
	if doc.Theme != "" {
		theme = doc.Theme
	}

	for _, job := range doc.RasterJobs {
		if err := ctx.Err(); err != nil {
			report.Failures = append(report.Failures, JobFailure{Job: job, Err: err})
			continue
		}

		req := interfaces.RasterRequest{
			Payload: job.Payload,
			Columns: job.Columns,
			Theme:   theme,
		}
		if job.Kind == interfaces.RasterCode {
			req.Language = NormalizeLanguage(job.Language)
		}

		result, err := s.rasterizer.Raster(ctx, req)
		if err != nil {
			report.Failures = append(report.Failures, JobFailure{Job: job, Err: err})
			s.logger.Warn("raster job failed",
				"kind", string(job.Kind),
				"block_index", job.BlockIndex,
				"error", err,
			)
			continue
		}

		report.Images = append(report.Images, interfaces.ImageReference{
			Source:     result.Path,
			Alt:        jobAlt(job, req.Language),
			BlockIndex: job.BlockIndex,
			Role:       interfaces.RoleContent,
		})
	}

	s.logger.Debug("raster run complete",
		"jobs", len(doc.RasterJobs),
		"rendered", len(report.Images),
		"failed", len(report.Failures),
	)

	return report
}

func jobAlt(job interfaces.RasterJob, language string) string {
	if job.Kind == interfaces.RasterTable {
		return fmt.Sprintf("table (%d columns)", job.Columns)
	}
	return fmt.Sprintf("code snippet (%s)", language)
}
