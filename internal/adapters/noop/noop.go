// Package noop provides inert adapter implementations so the publisher can be
// wired without external side effects: dry runs, tests, and hosts that only
// want the parse and plan stages.
package noop

import (
	"context"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Rasterizer returns a raster backend that renders nothing.
func Rasterizer() interfaces.Rasterizer {
	return rasterizerAdapter{}
}

type rasterizerAdapter struct{}

func (rasterizerAdapter) Raster(context.Context, interfaces.RasterRequest) (interfaces.RasterResult, error) {
	return interfaces.RasterResult{}, nil
}

// Destination returns a driver that accepts every operation and stores nothing.
func Destination() interfaces.DestinationDriver {
	return destinationAdapter{}
}

type destinationAdapter struct{}

func (destinationAdapter) CountBlocks(context.Context) (int, error) {
	return 0, nil
}

func (destinationAdapter) InsertAfter(context.Context, int, interfaces.Artifact) error {
	return nil
}

func (destinationAdapter) ReplaceAllContent(context.Context, string) error {
	return nil
}

func (destinationAdapter) ReadCurrentMarkup(context.Context) (string, error) {
	return "", nil
}

func (destinationAdapter) SetTitle(context.Context, string) error {
	return nil
}

func (destinationAdapter) SetCover(context.Context, string) error {
	return nil
}

// Clipboard returns a transport that discards markup.
func Clipboard() interfaces.Clipboard {
	return clipboardAdapter{}
}

type clipboardAdapter struct{}

func (clipboardAdapter) WriteMarkup(string) error {
	return nil
}
