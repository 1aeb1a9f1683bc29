package differ

import (
	"html"
	"regexp"
	"strings"
)

// Both normalizers reduce their input to the same plain-text line shape: one
// line per block, inline styling stripped, whitespace collapsed. Structural
// artifacts that never render as body text (dividers, standalone images,
// table separator rows) vanish on both sides so they cannot show up as drift.

var (
	blockTagPattern   = regexp.MustCompile(`(?i)</?(?:p|div|h[1-6]|li|tr|br|blockquote|hr|pre|ul|ol|table)\b[^>]*>`)
	anyTagPattern     = regexp.MustCompile(`<[^>]+>`)
	topHeadingPattern = regexp.MustCompile(`^#\s+`)
	headingPattern    = regexp.MustCompile(`^#{2,6}\s+`)
	imageLinePattern  = regexp.MustCompile(`^!\[.*\]\(.*\)$`)
	dividerPattern    = regexp.MustCompile(`^[-*_]{3,}\s*$`)
	tableSepPattern   = regexp.MustCompile(`^[\s|:-]+$`)
	tableRowPattern   = regexp.MustCompile(`^\|.+\|$`)
	bulletPattern     = regexp.MustCompile(`^[-*+]\s+`)
	orderedPattern    = regexp.MustCompile(`^\d+\.\s+`)
	quotePattern      = regexp.MustCompile(`^>\s*`)
	boldItalicPattern = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.+?)\*`)
	strikePattern     = regexp.MustCompile(`~~(.+?)~~`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// NormalizeMarkup converts scraped rich markup into normalized text lines,
// one per block-level element.
func NormalizeMarkup(markup string) []string {
	text := blockTagPattern.ReplaceAllString(markup, "\n")
	text = anyTagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if cleaned := collapse(line); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return lines
}

// NormalizeMarkdown converts markdown source into the same normalized line
// shape. Top-level headings are skipped because they map to the destination
// title slot, not the body.
func NormalizeMarkdown(source string) []string {
	source = stripFrontMatter(source)

	var lines []string
	inCodeBlock := false

	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			if line != "" {
				lines = append(lines, line)
			}
			continue
		}
		if line == "" {
			continue
		}
		if topHeadingPattern.MatchString(line) {
			continue
		}
		line = headingPattern.ReplaceAllString(line, "")

		if imageLinePattern.MatchString(line) {
			continue
		}
		if dividerPattern.MatchString(line) {
			continue
		}
		if tableSepPattern.MatchString(line) {
			continue
		}
		if tableRowPattern.MatchString(line) {
			var cells []string
			for _, cell := range strings.Split(line, "|") {
				if trimmed := strings.TrimSpace(cell); trimmed != "" {
					cells = append(cells, trimmed)
				}
			}
			line = strings.Join(cells, " | ")
		}

		line = bulletPattern.ReplaceAllString(line, "")
		line = orderedPattern.ReplaceAllString(line, "")
		line = quotePattern.ReplaceAllString(line, "")

		line = boldItalicPattern.ReplaceAllString(line, "$1")
		line = boldPattern.ReplaceAllString(line, "$1")
		line = italicPattern.ReplaceAllString(line, "$1")
		line = strikePattern.ReplaceAllString(line, "$1")
		line = inlineCodePattern.ReplaceAllString(line, "$1")
		line = linkPattern.ReplaceAllString(line, "$1")

		if cleaned := collapse(line); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return lines
}

// collapse squeezes runs of whitespace into single spaces and removes
// zero-width characters that rich-text editors inject invisibly.
func collapse(line string) string {
	line = strings.Map(dropZeroWidth, line)
	return strings.Join(strings.Fields(line), " ")
}

func dropZeroWidth(r rune) rune {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\ufeff':
		return -1
	}
	return r
}

func stripFrontMatter(source string) string {
	if !strings.HasPrefix(source, "---") {
		return source
	}
	if end := strings.Index(source[3:], "---"); end != -1 {
		return source[end+6:]
	}
	return source
}
