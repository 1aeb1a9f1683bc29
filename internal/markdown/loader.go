package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Loader reads an article from disk and runs it through the indexer, stamping
// the document with its path, checksum, and modification time. Relative image
// sources resolve against the article's directory unless a base path is set.
type Loader struct {
	indexer  interfaces.DocumentIndexer
	basePath string
	logger   interfaces.Logger
}

// LoaderOption customises loader behaviour.
type LoaderOption func(*Loader)

// WithBasePath resolves relative image sources against dir instead of the
// article's own directory.
func WithBasePath(dir string) LoaderOption {
	return func(l *Loader) {
		l.basePath = dir
	}
}

// WithLoaderLogger attaches a logger to the loader.
func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a loader around the given indexer.
func NewLoader(indexer interfaces.DocumentIndexer, opts ...LoaderOption) *Loader {
	l := &Loader{
		indexer: indexer,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load satisfies interfaces.DocumentLoader.
func (l *Loader) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("markdown: stat %s: %w", path, err)
	}

	doc, err := l.indexer.Index(data)
	if err != nil {
		return nil, fmt.Errorf("markdown: index %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	doc.Path = path
	doc.Checksum = hex.EncodeToString(sum[:])
	doc.LastModified = info.ModTime()

	base := l.basePath
	if base == "" {
		base = filepath.Dir(path)
	}
	if doc.Cover != nil {
		doc.Cover.Source = resolveSource(base, doc.Cover.Source)
	}
	for i := range doc.Images {
		doc.Images[i].Source = resolveSource(base, doc.Images[i].Source)
	}

	l.logger.Debug("document loaded",
		"path", path,
		"blocks", len(doc.Blocks),
		"images", len(doc.Images),
		"raster_jobs", len(doc.RasterJobs),
	)

	return doc, nil
}

// resolveSource turns a relative image reference into an absolute path. URLs
// and data URIs pass through untouched.
func resolveSource(base, src string) string {
	if src == "" || filepath.IsAbs(src) {
		return src
	}
	if strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
		return src
	}
	return filepath.Join(base, src)
}
