package interfaces

import (
	"context"
	"strings"
	"time"
)

// BlockKind tags the structural role of a block within a parsed document.
type BlockKind string

// Block kinds produced by the indexer. Code, table, and divider blocks are
// placeholders: their visible artifact (rasterized image, divider command) is
// inserted by the planner rather than rendered from the block's own markup.
const (
	BlockHeading    BlockKind = "heading"
	BlockParagraph  BlockKind = "paragraph"
	BlockList       BlockKind = "list"
	BlockBlockquote BlockKind = "blockquote"
	BlockCode       BlockKind = "code"
	BlockTable      BlockKind = "table"
	BlockDivider    BlockKind = "divider"
	BlockImage      BlockKind = "image"
)

// Block is one structural unit of a parsed document. Index is the block's
// 0-based position in document order; downstream consumers address blocks
// exclusively by this index, so it is never reused or reordered once assigned.
type Block struct {
	Index  int
	Kind   BlockKind
	Markup string
}

// ImageRole distinguishes the document cover from body images.
type ImageRole string

const (
	// RoleCover marks the first image encountered in a document. The cover
	// maps to a dedicated destination slot and never joins the block sequence.
	RoleCover ImageRole = "cover"
	// RoleContent marks every subsequent image; content images are anchored
	// to the index of the block they appear in.
	RoleContent ImageRole = "content"
)

// ImageReference points at an image artifact and the block it is anchored to.
// Cover references carry a BlockIndex of -1.
type ImageReference struct {
	Source     string
	Alt        string
	BlockIndex int
	Role       ImageRole
}

// RasterKind identifies the source structure a raster job was created from.
type RasterKind string

const (
	RasterCode  RasterKind = "code"
	RasterTable RasterKind = "table"
)

// RasterJob asks the rasterizer to turn a code or table payload into an image
// anchored at BlockIndex. Columns is only set for table jobs.
type RasterJob struct {
	BlockIndex int
	Kind       RasterKind
	Payload    string
	Language   string
	Columns    int
}

// DividerMarker records a thematic break at BlockIndex. The destination medium
// cannot express a divider as ordinary markup, so the marker travels through
// the insertion plan as an explicit command.
type DividerMarker struct {
	BlockIndex int
}

// Document is the result of one parse invocation: an ordered block sequence
// plus the side-tables the planner consumes. Documents are immutable once
// produced; a re-parse yields a new Document.
type Document struct {
	Path  string
	Title string
	// Theme is an optional raster theme override carried in the document's
	// front-matter. Empty means the configured default applies.
	Theme        string
	Cover        *ImageReference
	Blocks       []Block
	Images       []ImageReference
	RasterJobs   []RasterJob
	Dividers     []DividerMarker
	Checksum     string
	LastModified time.Time
}

// BodyMarkup joins the block markup into the destination body payload.
func (d *Document) BodyMarkup() string {
	if d == nil || len(d.Blocks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.Blocks))
	for _, block := range d.Blocks {
		parts = append(parts, block.Markup)
	}
	return strings.Join(parts, "\n")
}

// DocumentIndexer converts raw Markdown bytes into a positioned Document.
// Implementations must be pure and deterministic: identical input yields
// identical block indices and side-tables.
type DocumentIndexer interface {
	Index(source []byte) (*Document, error)
}

// DocumentLoader reads a Markdown file from disk and indexes it, capturing
// file metadata (mtime, checksum) alongside the parse result.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*Document, error)
}
