// Package history keeps an audit log of publish runs so operators can answer
// "what went out, when, and how cleanly" without scraping the destination.
package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PublishRecord is one row of the publish audit log. The ID derives from the
// source path and checksum, so re-publishing unchanged content upserts the
// same row instead of growing the log.
type PublishRecord struct {
	bun.BaseModel `bun:"table:publish_records,alias:pr"`

	ID             uuid.UUID `bun:",pk,type:uuid"                 json:"id"`
	Path           string    `bun:"path,notnull"                  json:"path"`
	Slug           string    `bun:"slug,notnull"                  json:"slug"`
	Title          string    `bun:"title"                         json:"title"`
	Checksum       string    `bun:"checksum,notnull"              json:"checksum"`
	Theme          string    `bun:"theme"                         json:"theme,omitempty"`
	Blocks         int       `bun:"blocks,notnull"                json:"blocks"`
	PlannedEntries int       `bun:"planned_entries,notnull"       json:"planned_entries"`
	PlacedEntries  int       `bun:"placed_entries,notnull"        json:"placed_entries"`
	RasterFailures int       `bun:"raster_failures,notnull"       json:"raster_failures"`
	InsertFailures int       `bun:"insert_failures,notnull"       json:"insert_failures"`
	CoverSet       bool      `bun:"cover_set,notnull,default:false" json:"cover_set"`
	DryRun         bool      `bun:"dry_run,notnull,default:false" json:"dry_run"`
	PublishedAt    time.Time `bun:"published_at,nullzero,default:current_timestamp" json:"published_at"`
}

// Partial reports whether the recorded run completed with artifact failures.
func (r *PublishRecord) Partial() bool {
	return r.RasterFailures > 0 || r.InsertFailures > 0
}
