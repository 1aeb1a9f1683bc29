package interfaces

// ArtifactKind distinguishes plan entry payloads.
type ArtifactKind string

const (
	ArtifactDivider ArtifactKind = "divider"
	ArtifactImage   ArtifactKind = "image"
)

// Artifact is the payload of one insertion. Image is nil for dividers.
type Artifact struct {
	Kind  ArtifactKind
	Image *ImageReference
}

// PlanEntry places one artifact immediately after the destination block
// currently at BlockIndex.
type PlanEntry struct {
	BlockIndex int
	Artifact   Artifact
}

// InsertionPlan is an ordered sequence of placements sorted by BlockIndex
// descending. Applying entries in plan order guarantees every later (lower
// index) insertion sees an unperturbed index space: insertions at higher
// indices never shift blocks at indices not yet processed. Applying the plan
// in ascending order is incorrect and explicitly disallowed.
type InsertionPlan []PlanEntry
