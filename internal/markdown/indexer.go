package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// placeholderMarkup holds an index position in the destination body for blocks
// whose visible artifact (raster image, divider command) arrives later through
// the insertion plan.
const placeholderMarkup = "<p></p>"

// Indexer converts Markdown bytes into a positioned block sequence. The
// indexer is stateless and deterministic: callers can share one instance and
// identical input always yields identical indices and side-tables.
type Indexer struct {
	md        goldmark.Markdown
	hardWraps bool
}

// Option customises indexer behaviour.
type Option func(*Indexer)

// WithHardWraps renders soft line breaks as explicit break tags instead of spaces.
func WithHardWraps(enabled bool) Option {
	return func(ix *Indexer) {
		ix.hardWraps = enabled
	}
}

// NewIndexer constructs an indexer with GFM tables, strikethrough, and
// autolinks enabled; these are the constructs the destination markup can carry.
func NewIndexer(opts ...Option) *Indexer {
	ix := &Indexer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
		),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Index satisfies interfaces.DocumentIndexer. Front-matter is stripped before
// segmentation; a leading top-level heading becomes the document title and is
// excluded from the block sequence. An empty document yields zero blocks and
// an empty title, not an error.
func (ix *Indexer) Index(source []byte) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	doc := &interfaces.Document{
		Title: strings.TrimSpace(meta.Title),
		Theme: strings.TrimSpace(meta.Theme),
	}
	st := &indexState{doc: doc, source: body, hardWraps: ix.hardWraps}

	root := ix.md.Parser().Parse(text.NewReader(body))

	first := true
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		if first {
			first = false
			if heading, ok := node.(*ast.Heading); ok && heading.Level == 1 {
				if title := strings.TrimSpace(st.plainText(heading)); title != "" {
					doc.Title = title
				}
				continue
			}
		}
		st.appendNode(node)
	}

	return doc, nil
}

// indexState accumulates blocks and side-tables for a single parse. It is
// never shared across invocations.
type indexState struct {
	doc       *interfaces.Document
	source    []byte
	hardWraps bool
	coverSeen bool
}

func (st *indexState) nextIndex() int {
	return len(st.doc.Blocks)
}

func (st *indexState) appendBlock(kind interfaces.BlockKind, markup string) int {
	idx := len(st.doc.Blocks)
	st.doc.Blocks = append(st.doc.Blocks, interfaces.Block{
		Index:  idx,
		Kind:   kind,
		Markup: markup,
	})
	return idx
}

func (st *indexState) appendNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		st.appendHeading(n)
	case *ast.Paragraph:
		st.appendParagraph(n)
	case *ast.List:
		anchor := st.nextIndex()
		st.appendBlock(interfaces.BlockList, st.renderList(n, anchor))
	case *ast.Blockquote:
		st.appendBlockquote(n)
	case *ast.FencedCodeBlock:
		st.appendCode(string(n.Language(st.source)), st.linesText(n))
	case *ast.CodeBlock:
		st.appendCode("", st.linesText(n))
	case *extast.Table:
		st.appendTable(n)
	case *ast.ThematicBreak:
		st.appendDivider()
	default:
		// Unrecognized block constructs (raw HTML and friends) pass through
		// as literal text rather than failing the parse.
		if literal := strings.TrimSpace(st.literalText(node)); literal != "" {
			st.appendBlock(interfaces.BlockParagraph, "<p>"+escape(literal)+"</p>")
		}
	}
}

func (st *indexState) appendHeading(n *ast.Heading) {
	anchor := st.nextIndex()
	markup := st.renderInline(n, anchor)
	st.appendBlock(interfaces.BlockHeading, fmt.Sprintf("<h%d>%s</h%d>", n.Level, markup, n.Level))
}

func (st *indexState) appendParagraph(n *ast.Paragraph) {
	if st.imageOnly(n) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if img, ok := child.(*ast.Image); ok {
				st.captureImage(img, -1, true)
			}
		}
		return
	}

	anchor := st.nextIndex()
	markup := strings.TrimSpace(st.renderInline(n, anchor))
	if markup == "" {
		return
	}
	st.appendBlock(interfaces.BlockParagraph, "<p>"+markup+"</p>")
}

func (st *indexState) appendBlockquote(n *ast.Blockquote) {
	anchor := st.nextIndex()
	var parts []string
	st.flattenQuote(n, anchor, &parts)
	st.appendBlock(interfaces.BlockBlockquote, "<blockquote>"+strings.Join(parts, " ")+"</blockquote>")
}

// flattenQuote collapses nested quote content into a single run of inline
// markup; the destination renders blockquotes as one flat styled block.
func (st *indexState) flattenQuote(n ast.Node, anchor int, parts *[]string) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Blockquote:
			st.flattenQuote(c, anchor, parts)
		case *ast.List:
			*parts = append(*parts, st.renderList(c, anchor))
		default:
			if rendered := strings.TrimSpace(st.renderInline(c, anchor)); rendered != "" {
				*parts = append(*parts, rendered)
			}
		}
	}
}

func (st *indexState) appendCode(language, payload string) {
	if strings.TrimSpace(payload) == "" {
		return
	}
	if language == "" {
		language = "text"
	}
	idx := st.appendBlock(interfaces.BlockCode, placeholderMarkup)
	st.doc.RasterJobs = append(st.doc.RasterJobs, interfaces.RasterJob{
		BlockIndex: idx,
		Kind:       interfaces.RasterCode,
		Payload:    strings.TrimRight(payload, "\n"),
		Language:   language,
	})
}

func (st *indexState) appendTable(n *extast.Table) {
	header, rows := st.tableCells(n)

	columns := len(header)
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		return
	}

	// Inconsistent column counts are tolerated: short rows pad with empty
	// cells instead of rejecting the table.
	header = padRow(header, columns)
	for i, row := range rows {
		rows[i] = padRow(row, columns)
	}

	idx := st.appendBlock(interfaces.BlockTable, placeholderMarkup)
	st.doc.RasterJobs = append(st.doc.RasterJobs, interfaces.RasterJob{
		BlockIndex: idx,
		Kind:       interfaces.RasterTable,
		Payload:    tablePayload(header, rows),
		Columns:    columns,
	})
}

func (st *indexState) appendDivider() {
	idx := st.appendBlock(interfaces.BlockDivider, placeholderMarkup)
	st.doc.Dividers = append(st.doc.Dividers, interfaces.DividerMarker{BlockIndex: idx})
}

// captureImage classifies an image reference. The first image anywhere in the
// document becomes the cover and never receives a block index; later images
// become content references anchored at the containing block (or, when
// standalone, at a placeholder block of their own).
func (st *indexState) captureImage(img *ast.Image, anchor int, standalone bool) {
	ref := interfaces.ImageReference{
		Source: string(img.Destination),
		Alt:    strings.TrimSpace(st.plainText(img)),
	}

	if !st.coverSeen {
		st.coverSeen = true
		ref.BlockIndex = -1
		ref.Role = interfaces.RoleCover
		st.doc.Cover = &ref
		return
	}

	ref.Role = interfaces.RoleContent
	if standalone {
		ref.BlockIndex = st.appendBlock(interfaces.BlockImage, placeholderMarkup)
	} else {
		ref.BlockIndex = anchor
	}
	st.doc.Images = append(st.doc.Images, ref)
}

// imageOnly reports whether a paragraph consists solely of image links and
// incidental whitespace, in which case it contributes no paragraph block.
func (st *indexState) imageOnly(n *ast.Paragraph) bool {
	sawImage := false
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Image:
			sawImage = true
		case *ast.Text:
			if strings.TrimSpace(string(c.Segment.Value(st.source))) != "" {
				return false
			}
		default:
			return false
		}
	}
	return sawImage
}

func (st *indexState) tableCells(n *extast.Table) ([]string, [][]string) {
	var header []string
	var rows [][]string

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			header = st.rowCells(row)
		case *extast.TableRow:
			rows = append(rows, st.rowCells(row))
		}
	}
	return header, rows
}

func (st *indexState) rowCells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, strings.TrimSpace(st.plainText(cell)))
	}
	return cells
}

func (st *indexState) linesText(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(st.source))
	}
	return b.String()
}

// literalText extracts the raw text of an unrecognized block node.
func (st *indexState) literalText(n ast.Node) string {
	if n.Lines() != nil && n.Lines().Len() > 0 {
		return st.linesText(n)
	}
	return st.plainText(n)
}

func padRow(row []string, columns int) []string {
	for len(row) < columns {
		row = append(row, "")
	}
	return row
}

// tablePayload rebuilds a normalized pipe-delimited table the rasterizer can
// consume without re-running table detection.
func tablePayload(header []string, rows [][]string) string {
	var b strings.Builder

	writeRow := func(cells []string) {
		b.WriteString("|")
		for _, cell := range cells {
			b.WriteString(" ")
			b.WriteString(strings.ReplaceAll(cell, "|", "\\|"))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(header)
	b.WriteString("|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}

	return strings.TrimRight(b.String(), "\n")
}
