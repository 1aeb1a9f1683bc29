package interfaces

// DiffResult reports how far a live destination body has drifted from its
// markdown source. Recomputed fresh on every comparison, never persisted.
type DiffResult struct {
	// MatchPercentage is a similarity ratio in [0, 100] over the normalized
	// line sequences. Swapping the operands changes diff hunk signs only,
	// never this value.
	MatchPercentage  float64
	UnifiedDiff      string
	LinesAdded       int
	LinesRemoved     int
	SourceLines      int
	DestinationLines int
	Identical        bool
}

// Differ normalizes a scraped destination body and the original markdown to a
// comparable plain-text form and reports their divergence.
type Differ interface {
	Compare(destinationMarkup string, sourceMarkdown string) (DiffResult, error)
}
