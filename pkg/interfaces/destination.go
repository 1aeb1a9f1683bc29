package interfaces

import "context"

// DestinationDriver abstracts the remote rich-text surface that receives
// published content. The contract is purely index-addressed: the driver
// reports block positions and inserts artifacts relative to them, so the
// core never depends on cursor or selection state.
type DestinationDriver interface {
	// CountBlocks reports the number of block-level elements currently in the
	// destination body. Inline spans do not count.
	CountBlocks(ctx context.Context) (int, error)
	// InsertAfter places the artifact immediately after the block at index.
	// An index of -1 inserts at the top of an empty or non-empty body.
	InsertAfter(ctx context.Context, index int, artifact Artifact) error
	// ReplaceAllContent swaps the whole destination body for the given markup.
	ReplaceAllContent(ctx context.Context, markup string) error
	// ReadCurrentMarkup scrapes the destination body as rich markup.
	ReadCurrentMarkup(ctx context.Context) (string, error)
	// SetTitle fills the destination's dedicated title slot.
	SetTitle(ctx context.Context, title string) error
	// SetCover fills the destination's dedicated cover image slot.
	SetCover(ctx context.Context, imagePath string) error
}

// Clipboard hands opaque rich markup to the OS transport. The transport must
// preserve the markup losslessly; the core imposes no further contract.
type Clipboard interface {
	WriteMarkup(markup string) error
}
