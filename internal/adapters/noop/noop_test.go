package noop

import (
	"context"
	"testing"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

func TestAdaptersAreInert(t *testing.T) {
	ctx := context.Background()

	result, err := Rasterizer().Raster(ctx, interfaces.RasterRequest{Payload: "x := 1"})
	if err != nil || result.Path != "" {
		t.Fatalf("Raster() = %+v, %v", result, err)
	}

	driver := Destination()
	if count, err := driver.CountBlocks(ctx); err != nil || count != 0 {
		t.Fatalf("CountBlocks() = %d, %v", count, err)
	}
	if err := driver.InsertAfter(ctx, 0, interfaces.Artifact{Kind: interfaces.ArtifactDivider}); err != nil {
		t.Fatalf("InsertAfter() error = %v", err)
	}
	if err := driver.ReplaceAllContent(ctx, "<p>hi</p>"); err != nil {
		t.Fatalf("ReplaceAllContent() error = %v", err)
	}
	if err := driver.SetTitle(ctx, "title"); err != nil {
		t.Fatalf("SetTitle() error = %v", err)
	}

	if err := Clipboard().WriteMarkup("<p>hi</p>"); err != nil {
		t.Fatalf("WriteMarkup() error = %v", err)
	}
}
