// Package memory implements an in-process destination driver. It backs tests
// and dry-run style flows where no live editor is attached.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Driver holds the destination body as an ordered slice of block markup.
// Safe for concurrent use.
type Driver struct {
	mu     sync.Mutex
	title  string
	cover  string
	blocks []string
}

// New constructs an empty in-memory destination.
func New() *Driver {
	return &Driver{}
}

func (d *Driver) CountBlocks(context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.blocks), nil
}

func (d *Driver) InsertAfter(_ context.Context, index int, artifact interfaces.Artifact) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	at := index + 1
	if at < 0 || at > len(d.blocks) {
		return fmt.Errorf("memory: insert position %d out of range (%d blocks)", index, len(d.blocks))
	}

	markup, err := renderArtifact(artifact)
	if err != nil {
		return err
	}

	d.blocks = append(d.blocks[:at], append([]string{markup}, d.blocks[at:]...)...)
	return nil
}

func (d *Driver) ReplaceAllContent(_ context.Context, markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if markup == "" {
		d.blocks = nil
		return nil
	}
	d.blocks = strings.Split(markup, "\n")
	return nil
}

func (d *Driver) ReadCurrentMarkup(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.Join(d.blocks, "\n"), nil
}

func (d *Driver) SetTitle(_ context.Context, title string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
	return nil
}

func (d *Driver) SetCover(_ context.Context, imagePath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cover = imagePath
	return nil
}

// Title returns the destination title slot.
func (d *Driver) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

// Cover returns the destination cover slot.
func (d *Driver) Cover() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cover
}

// Blocks returns a copy of the current block markup sequence.
func (d *Driver) Blocks() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.blocks))
	copy(out, d.blocks)
	return out
}

func renderArtifact(artifact interfaces.Artifact) (string, error) {
	switch artifact.Kind {
	case interfaces.ArtifactDivider:
		return "<hr/>", nil
	case interfaces.ArtifactImage:
		if artifact.Image == nil {
			return "", fmt.Errorf("memory: image artifact without reference")
		}
		return fmt.Sprintf(`<img src=%q alt=%q/>`, artifact.Image.Source, artifact.Image.Alt), nil
	default:
		return "", fmt.Errorf("memory: unknown artifact kind %q", artifact.Kind)
	}
}
