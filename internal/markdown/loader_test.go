package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func writeArticle(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write article: %v", err)
	}
	return path
}

func TestLoaderStampsDocument(t *testing.T) {
	dir := t.TempDir()
	content := "# Post\n\nHello.\n"
	path := writeArticle(t, dir, "post.md", content)

	loader := NewLoader(NewIndexer())
	doc, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.Path != path {
		t.Errorf("path = %q, want %q", doc.Path, path)
	}
	sum := sha256.Sum256([]byte(content))
	if doc.Checksum != hex.EncodeToString(sum[:]) {
		t.Errorf("checksum = %q", doc.Checksum)
	}
	if doc.LastModified.IsZero() {
		t.Error("last modified not set")
	}
	if doc.Title != "Post" {
		t.Errorf("title = %q", doc.Title)
	}
}

func TestLoaderResolvesRelativeImages(t *testing.T) {
	dir := t.TempDir()
	content := "![cover](assets/cover.png)\n\nText.\n\n![fig](assets/fig.png)\n\n![remote](https://example.com/a.png)\n"
	path := writeArticle(t, dir, "post.md", content)

	loader := NewLoader(NewIndexer())
	doc, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := filepath.Join(dir, "assets", "cover.png"); doc.Cover == nil || doc.Cover.Source != want {
		t.Fatalf("cover = %+v, want source %q", doc.Cover, want)
	}
	if len(doc.Images) != 2 {
		t.Fatalf("content images = %d, want 2", len(doc.Images))
	}
	if want := filepath.Join(dir, "assets", "fig.png"); doc.Images[0].Source != want {
		t.Errorf("local image = %q, want %q", doc.Images[0].Source, want)
	}
	if doc.Images[1].Source != "https://example.com/a.png" {
		t.Errorf("remote image rewritten: %q", doc.Images[1].Source)
	}
}

func TestLoaderBasePathOverride(t *testing.T) {
	dir := t.TempDir()
	base := t.TempDir()
	path := writeArticle(t, dir, "post.md", "![cover](cover.png)\n")

	loader := NewLoader(NewIndexer(), WithBasePath(base))
	doc, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(base, "cover.png"); doc.Cover.Source != want {
		t.Fatalf("cover source = %q, want %q", doc.Cover.Source, want)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(NewIndexer())
	if _, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoaderHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(NewIndexer())
	if _, err := loader.Load(ctx, "post.md"); err == nil {
		t.Fatal("expected context error")
	}
}
