// Package markdown implements the parser/indexer stage of the publishing
// pipeline: it segments a Markdown document into an ordered block sequence
// with stable integer indices and collects the side-tables (content images,
// raster jobs, divider markers) the insertion planner consumes.
package markdown
