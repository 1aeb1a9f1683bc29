// Package planner turns a document's side-tables into an order-safe
// insertion plan and applies it against a destination driver.
package planner

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Tiebreak decides which artifact comes first in the plan when a divider and
// an image share a block index.
type Tiebreak int

const (
	// DividerFirst places divider entries ahead of image entries at the same
	// anchor. This is the default.
	DividerFirst Tiebreak = iota
	// ImageFirst places image entries ahead of divider entries at the same anchor.
	ImageFirst
)

// ParseTiebreak maps a configuration string to a Tiebreak.
func ParseTiebreak(value string) (Tiebreak, error) {
	switch value {
	case "", "divider-first":
		return DividerFirst, nil
	case "image-first":
		return ImageFirst, nil
	default:
		return DividerFirst, fmt.Errorf("planner: unknown tiebreak policy %q", value)
	}
}

// Planner builds insertion plans. Zero value is usable; options adjust the
// tiebreak policy and logging.
type Planner struct {
	tiebreak Tiebreak
	logger   interfaces.Logger
}

// Option customises planner behaviour.
type Option func(*Planner)

// WithTiebreak sets the same-anchor ordering policy.
func WithTiebreak(policy Tiebreak) Option {
	return func(p *Planner) {
		p.tiebreak = policy
	}
}

// WithLogger attaches a logger to the planner.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a planner.
func New(opts ...Option) *Planner {
	p := &Planner{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan merges the document's divider markers and content image references
// into a single plan sorted by block index descending. Cover images never
// enter the plan; they travel through the dedicated cover slot.
func (p *Planner) Plan(doc *interfaces.Document) interfaces.InsertionPlan {
	plan := make(interfaces.InsertionPlan, 0, len(doc.Dividers)+len(doc.Images))

	for _, marker := range doc.Dividers {
		plan = append(plan, interfaces.PlanEntry{
			BlockIndex: marker.BlockIndex,
			Artifact:   interfaces.Artifact{Kind: interfaces.ArtifactDivider},
		})
	}
	for i := range doc.Images {
		img := doc.Images[i]
		if img.Role != interfaces.RoleContent {
			continue
		}
		plan = append(plan, interfaces.PlanEntry{
			BlockIndex: img.BlockIndex,
			Artifact:   interfaces.Artifact{Kind: interfaces.ArtifactImage, Image: &img},
		})
	}

	sort.SliceStable(plan, func(i, j int) bool {
		a, b := plan[i], plan[j]
		if a.BlockIndex != b.BlockIndex {
			return a.BlockIndex > b.BlockIndex
		}
		return p.rank(a.Artifact.Kind) < p.rank(b.Artifact.Kind)
	})

	p.logger.Debug("insertion plan built",
		"entries", len(plan),
		"dividers", len(doc.Dividers),
		"images", len(doc.Images),
	)

	return plan
}

func (p *Planner) rank(kind interfaces.ArtifactKind) int {
	first := interfaces.ArtifactDivider
	if p.tiebreak == ImageFirst {
		first = interfaces.ArtifactImage
	}
	if kind == first {
		return 0
	}
	return 1
}
