// Package differ compares a scraped destination body against its markdown
// source and reports drift as a unified diff plus a similarity ratio.
package differ

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// ErrDestinationEmpty signals that nothing was scraped from the destination,
// so there is no body to compare against.
var ErrDestinationEmpty = errors.New("differ: destination markup is empty")

const (
	fromLabel = "local source"
	toLabel   = "published body"
)

// ContentDiffer implements interfaces.Differ over normalized line sequences.
type ContentDiffer struct {
	logger interfaces.Logger
}

// Option customises the differ.
type Option func(*ContentDiffer)

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(d *ContentDiffer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New constructs a content differ.
func New(opts ...Option) *ContentDiffer {
	d := &ContentDiffer{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Compare normalizes both inputs and reports their divergence. The match
// ratio is computed with junk detection disabled so it is symmetric in its
// operands; swapping them can only flip hunk signs.
func (d *ContentDiffer) Compare(destinationMarkup, sourceMarkdown string) (interfaces.DiffResult, error) {
	if strings.TrimSpace(destinationMarkup) == "" {
		return interfaces.DiffResult{}, ErrDestinationEmpty
	}

	sourceLines := NormalizeMarkdown(sourceMarkdown)
	destLines := NormalizeMarkup(destinationMarkup)

	matcher := difflib.NewMatcherWithJunk(sourceLines, destLines, false, nil)
	ratio := matcher.Ratio()

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withLineEndings(sourceLines),
		B:        withLineEndings(destLines),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  3,
	})
	if err != nil {
		return interfaces.DiffResult{}, fmt.Errorf("differ: build unified diff: %w", err)
	}

	added, removed := countChanges(unified)

	result := interfaces.DiffResult{
		MatchPercentage:  ratio * 100,
		UnifiedDiff:      unified,
		LinesAdded:       added,
		LinesRemoved:     removed,
		SourceLines:      len(sourceLines),
		DestinationLines: len(destLines),
		Identical:        added == 0 && removed == 0,
	}

	d.logger.Debug("content compared",
		"match", fmt.Sprintf("%.1f%%", result.MatchPercentage),
		"added", added,
		"removed", removed,
	)

	return result, nil
}

func withLineEndings(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}

func countChanges(unified string) (added, removed int) {
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}
