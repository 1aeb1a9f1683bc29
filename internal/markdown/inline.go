package markdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func escape(s string) string {
	return html.EscapeString(s)
}

// renderInline renders the inline children of a node into destination markup.
// Images never emit markup here; they are captured into the reference table
// anchored at the enclosing block index.
func (st *indexState) renderInline(parent ast.Node, anchor int) string {
	var b strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		st.renderInlineNode(&b, child, anchor)
	}
	return b.String()
}

func (st *indexState) renderInlineNode(b *strings.Builder, node ast.Node, anchor int) {
	switch n := node.(type) {
	case *ast.Text:
		b.WriteString(escape(string(n.Segment.Value(st.source))))
		switch {
		case n.HardLineBreak():
			b.WriteString("<br/>")
		case n.SoftLineBreak():
			if st.hardWraps {
				b.WriteString("<br/>")
			} else {
				b.WriteString(" ")
			}
		}
	case *ast.String:
		b.WriteString(escape(string(n.Value)))
	case *ast.Emphasis:
		tag := "em"
		if n.Level == 2 {
			tag = "strong"
		}
		b.WriteString("<" + tag + ">")
		b.WriteString(st.renderInline(n, anchor))
		b.WriteString("</" + tag + ">")
	case *extast.Strikethrough:
		b.WriteString("<del>")
		b.WriteString(st.renderInline(n, anchor))
		b.WriteString("</del>")
	case *ast.CodeSpan:
		// The destination has no inline code style; bold is the closest
		// visual treatment it supports.
		b.WriteString("<strong>")
		b.WriteString(escape(st.plainText(n)))
		b.WriteString("</strong>")
	case *ast.Link:
		fmt.Fprintf(b, `<a href="%s">`, escape(string(n.Destination)))
		b.WriteString(st.renderInline(n, anchor))
		b.WriteString("</a>")
	case *ast.AutoLink:
		url := string(n.URL(st.source))
		label := string(n.Label(st.source))
		fmt.Fprintf(b, `<a href="%s">%s</a>`, escape(url), escape(label))
	case *ast.Image:
		st.captureImage(n, anchor, false)
	case *ast.RawHTML:
		b.WriteString(escape(st.segmentsText(n.Segments)))
	default:
		if node.Type() == ast.TypeInline {
			b.WriteString(escape(st.plainText(node)))
		}
	}
}

// plainText collects the literal text beneath a node, ignoring all markup.
func (st *indexState) plainText(n ast.Node) string {
	var b strings.Builder
	st.collectText(&b, n)
	return b.String()
}

func (st *indexState) collectText(b *strings.Builder, n ast.Node) {
	switch t := n.(type) {
	case *ast.Text:
		b.Write(t.Segment.Value(st.source))
		if t.SoftLineBreak() || t.HardLineBreak() {
			b.WriteString(" ")
		}
	case *ast.String:
		b.Write(t.Value)
	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			st.collectText(b, child)
		}
	}
}

func (st *indexState) segmentsText(segments *text.Segments) string {
	var b strings.Builder
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		b.Write(segment.Value(st.source))
	}
	return b.String()
}

// renderList renders a list container, recursing into nested lists. Loose and
// tight items render identically; the destination has no spacing distinction.
func (st *indexState) renderList(list *ast.List, anchor int) string {
	tag := "ul"
	attrs := ""
	if list.IsOrdered() {
		tag = "ol"
		if list.Start > 1 {
			attrs = fmt.Sprintf(` start="%d"`, list.Start)
		}
	}

	var b strings.Builder
	b.WriteString("<" + tag + attrs + ">")
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		b.WriteString("<li>")
		st.renderListItem(&b, item, anchor)
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func (st *indexState) renderListItem(b *strings.Builder, item ast.Node, anchor int) {
	first := true
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.List:
			b.WriteString(st.renderList(c, anchor))
		default:
			if !first {
				b.WriteString(" ")
			}
			b.WriteString(strings.TrimSpace(st.renderInline(c, anchor)))
		}
		first = false
	}
}
