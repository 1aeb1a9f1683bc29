package interfaces

import "context"

// RasterRequest describes one payload handed to the external rasterizer.
// Columns is populated for table payloads, Language for code payloads.
type RasterRequest struct {
	Payload  string
	Language string
	Columns  int
	Theme    string
}

// RasterResult points at the produced image.
type RasterResult struct {
	Path   string
	Width  int
	Height int
}

// Rasterizer renders structured text (code, table) into an image because the
// destination medium cannot render the structure natively. Implementations are
// invoked synchronously, one job at a time; a per-job failure must be returned
// as an error, never a panic, so the caller can continue with remaining jobs.
type Rasterizer interface {
	Raster(ctx context.Context, req RasterRequest) (RasterResult, error)
}
