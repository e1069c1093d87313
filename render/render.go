// Package render serializes reconstructed text trees as plain text,
// Markdown or HTML.
//
//	tree, err := layout.NewPipeline().Reconstruct(glyphs)
//	if err != nil {
//	    // handle error
//	}
//	md := render.Markdown(tree)
//
// Markdown marks superscripts as ^x^ and subscripts as ~x~ (the Pandoc
// convention). HTML uses <sup> and <sub>.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/glyphtext/layout"
)

// ErrUnknownFormat is returned for an output format name that is not
// recognized
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output format
type Format int

const (
	FormatText Format = iota
	FormatMarkdown
	FormatHTML
)

// String returns a string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// ParseFormat returns the format named s ("text", "markdown", "html" or the
// short forms "txt" and "md")
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// PlainText returns the tree text with blank lines between blocks
func PlainText(t *layout.Tree) string {
	return t.Text()
}

// Write renders t in format f to w, followed by a newline when the output
// is not empty
func Write(w io.Writer, t *layout.Tree, f Format) error {
	var out string
	switch f {
	case FormatText:
		out = PlainText(t)
	case FormatMarkdown:
		out = Markdown(t)
	case FormatHTML:
		var err error
		if out, err = HTML(t); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}

	if out == "" {
		return nil
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}
