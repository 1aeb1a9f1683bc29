package planner

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// fakeDriver models the destination body as a slice of labels so tests can
// assert final layout after a plan application.
type fakeDriver struct {
	blocks     []string
	failKind   interfaces.ArtifactKind
	countErr   error
	insertions int
}

func newFakeDriver(blocks ...string) *fakeDriver {
	return &fakeDriver{blocks: blocks}
}

func (d *fakeDriver) CountBlocks(context.Context) (int, error) {
	if d.countErr != nil {
		return 0, d.countErr
	}
	return len(d.blocks), nil
}

func (d *fakeDriver) InsertAfter(_ context.Context, index int, artifact interfaces.Artifact) error {
	if d.failKind != "" && artifact.Kind == d.failKind {
		return errors.New("rejected")
	}
	label := "divider"
	if artifact.Kind == interfaces.ArtifactImage {
		label = "image:" + artifact.Image.Source
	}
	at := index + 1
	if at < 0 || at > len(d.blocks) {
		return fmt.Errorf("index %d out of range", index)
	}
	d.blocks = append(d.blocks[:at], append([]string{label}, d.blocks[at:]...)...)
	d.insertions++
	return nil
}

func (d *fakeDriver) ReplaceAllContent(_ context.Context, markup string) error { return nil }
func (d *fakeDriver) ReadCurrentMarkup(context.Context) (string, error)        { return "", nil }
func (d *fakeDriver) SetTitle(context.Context, string) error                   { return nil }
func (d *fakeDriver) SetCover(context.Context, string) error                   { return nil }

func contentImage(source string, index int) interfaces.ImageReference {
	return interfaces.ImageReference{
		Source:     source,
		BlockIndex: index,
		Role:       interfaces.RoleContent,
	}
}

func TestPlanSortsDescending(t *testing.T) {
	doc := &interfaces.Document{
		Dividers: []interfaces.DividerMarker{{BlockIndex: 1}, {BlockIndex: 5}},
		Images:   []interfaces.ImageReference{contentImage("a.png", 3), contentImage("b.png", 5)},
	}

	plan := New().Plan(doc)

	gotIndices := make([]int, len(plan))
	for i, entry := range plan {
		gotIndices[i] = entry.BlockIndex
	}
	if want := []int{5, 5, 3, 1}; !reflect.DeepEqual(gotIndices, want) {
		t.Fatalf("plan indices = %v, want %v", gotIndices, want)
	}

	// Default tiebreak puts the divider ahead of the image at anchor 5.
	if plan[0].Artifact.Kind != interfaces.ArtifactDivider || plan[1].Artifact.Kind != interfaces.ArtifactImage {
		t.Fatalf("tiebreak order = %q, %q", plan[0].Artifact.Kind, plan[1].Artifact.Kind)
	}
}

func TestPlanTiebreakImageFirst(t *testing.T) {
	doc := &interfaces.Document{
		Dividers: []interfaces.DividerMarker{{BlockIndex: 2}},
		Images:   []interfaces.ImageReference{contentImage("a.png", 2)},
	}

	plan := New(WithTiebreak(ImageFirst)).Plan(doc)
	if plan[0].Artifact.Kind != interfaces.ArtifactImage {
		t.Fatalf("first entry kind = %q, want image", plan[0].Artifact.Kind)
	}
}

func TestPlanExcludesCoverImages(t *testing.T) {
	doc := &interfaces.Document{
		Images: []interfaces.ImageReference{
			{Source: "cover.png", BlockIndex: -1, Role: interfaces.RoleCover},
			contentImage("fig.png", 0),
		},
	}

	plan := New().Plan(doc)
	if len(plan) != 1 || plan[0].Artifact.Image.Source != "fig.png" {
		t.Fatalf("plan = %+v, want single content image entry", plan)
	}
}

func TestParseTiebreak(t *testing.T) {
	if policy, err := ParseTiebreak("image-first"); err != nil || policy != ImageFirst {
		t.Fatalf("ParseTiebreak(image-first) = %v, %v", policy, err)
	}
	if policy, err := ParseTiebreak(""); err != nil || policy != DividerFirst {
		t.Fatalf("ParseTiebreak(empty) = %v, %v", policy, err)
	}
	if _, err := ParseTiebreak("bogus"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestApplyPlacesArtifactsAfterTheirBlocks(t *testing.T) {
	doc := &interfaces.Document{
		Dividers: []interfaces.DividerMarker{{BlockIndex: 1}},
		Images:   []interfaces.ImageReference{contentImage("fig.png", 2)},
	}
	driver := newFakeDriver("b0", "b1", "b2")

	p := New()
	report := p.Apply(context.Background(), driver, p.Plan(doc))

	if report.Placed != 2 || len(report.Failures) != 0 {
		t.Fatalf("report = %+v", report)
	}
	want := []string{"b0", "b1", "divider", "b2", "image:fig.png"}
	if !reflect.DeepEqual(driver.blocks, want) {
		t.Fatalf("layout = %v, want %v", driver.blocks, want)
	}
}

func TestApplyDescendingOrderKeepsAnchorsStable(t *testing.T) {
	// Every block carries an artifact; any ascending application would shift
	// later anchors and scatter artifacts. Descending keeps each artifact
	// right behind its own block.
	doc := &interfaces.Document{
		Dividers: []interfaces.DividerMarker{{BlockIndex: 0}, {BlockIndex: 1}, {BlockIndex: 2}},
	}
	driver := newFakeDriver("b0", "b1", "b2")

	p := New()
	p.Apply(context.Background(), driver, p.Plan(doc))

	want := []string{"b0", "divider", "b1", "divider", "b2", "divider"}
	if !reflect.DeepEqual(driver.blocks, want) {
		t.Fatalf("layout = %v, want %v", driver.blocks, want)
	}

	// Applying the same entries in ascending order against a fresh body shows
	// why the sort matters: each insertion shifts the later anchors, so the
	// dividers clump together instead of trailing their own blocks.
	ascending := p.Plan(doc)
	for i, j := 0, len(ascending)-1; i < j; i, j = i+1, j-1 {
		ascending[i], ascending[j] = ascending[j], ascending[i]
	}
	naive := newFakeDriver("b0", "b1", "b2")
	p.Apply(context.Background(), naive, ascending)

	if reflect.DeepEqual(naive.blocks, want) {
		t.Fatalf("ascending application produced the correct layout %v; fixture no longer exercises anchor drift", naive.blocks)
	}
	scattered := []string{"b0", "divider", "divider", "divider", "b1", "b2"}
	if !reflect.DeepEqual(naive.blocks, scattered) {
		t.Fatalf("ascending layout = %v, want %v", naive.blocks, scattered)
	}
}

func TestApplyClampsAnchorsBeyondBody(t *testing.T) {
	plan := interfaces.InsertionPlan{
		{BlockIndex: 10, Artifact: interfaces.Artifact{Kind: interfaces.ArtifactDivider}},
	}
	driver := newFakeDriver("b0", "b1")

	report := New().Apply(context.Background(), driver, plan)

	if report.Clamped != 1 || report.Placed != 1 {
		t.Fatalf("report = %+v", report)
	}
	if want := []string{"b0", "b1", "divider"}; !reflect.DeepEqual(driver.blocks, want) {
		t.Fatalf("layout = %v, want %v", driver.blocks, want)
	}
}

func TestApplyEmptyBodyInsertsAtTop(t *testing.T) {
	plan := interfaces.InsertionPlan{
		{BlockIndex: 0, Artifact: interfaces.Artifact{Kind: interfaces.ArtifactDivider}},
	}
	driver := newFakeDriver()

	report := New().Apply(context.Background(), driver, plan)

	if report.Placed != 1 {
		t.Fatalf("report = %+v", report)
	}
	if want := []string{"divider"}; !reflect.DeepEqual(driver.blocks, want) {
		t.Fatalf("layout = %v, want %v", driver.blocks, want)
	}
}

func TestApplyIsolatesEntryFailures(t *testing.T) {
	doc := &interfaces.Document{
		Dividers: []interfaces.DividerMarker{{BlockIndex: 0}},
		Images:   []interfaces.ImageReference{contentImage("fig.png", 1)},
	}
	driver := newFakeDriver("b0", "b1")
	driver.failKind = interfaces.ArtifactDivider

	p := New()
	report := p.Apply(context.Background(), driver, p.Plan(doc))

	if report.Placed != 1 || len(report.Failures) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if report.Failures[0].Entry.Artifact.Kind != interfaces.ArtifactDivider {
		t.Fatalf("failure = %+v", report.Failures[0])
	}
	if want := []string{"b0", "b1", "image:fig.png"}; !reflect.DeepEqual(driver.blocks, want) {
		t.Fatalf("layout = %v, want %v", driver.blocks, want)
	}
}

func TestApplyCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := interfaces.InsertionPlan{
		{BlockIndex: 0, Artifact: interfaces.Artifact{Kind: interfaces.ArtifactDivider}},
	}
	report := New().Apply(ctx, newFakeDriver("b0"), plan)

	if report.Placed != 0 || len(report.Failures) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if !errors.Is(report.Failures[0].Err, context.Canceled) {
		t.Fatalf("failure err = %v", report.Failures[0].Err)
	}
}
