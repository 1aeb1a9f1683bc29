package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ErrFrontMatterInvalid marks a document whose front-matter delimiter is
// malformed. This is the only structural anomaly the indexer treats as
// terminal; every other irregularity degrades gracefully.
var ErrFrontMatterInvalid = errors.New("markdown: malformed front-matter")

// FrontMatter models the metadata the publisher cares about. Title acts as a
// fallback when the document carries no leading top-level heading.
type FrontMatter struct {
	Title string   `yaml:"title"`
	Theme string   `yaml:"theme"`
	Tags  []string `yaml:"tags"`
	Draft bool     `yaml:"draft"`
}

// ParseFrontMatter extracts metadata and the Markdown body from the provided
// source bytes. Documents without front-matter come back untouched with a
// zero FrontMatter.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatterInvalid, err)
	}

	return meta, body, nil
}
