package layout

import (
	"fmt"
	"strings"

	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// BlockRole represents the role of a paragraph-level block
type BlockRole int

const (
	BlockBody BlockRole = iota
	BlockHeader
	BlockListItem
	BlockUnresolved
)

// String returns a string representation of the block role
func (r BlockRole) String() string {
	switch r {
	case BlockHeader:
		return "header"
	case BlockListItem:
		return "list-item"
	case BlockUnresolved:
		return "unresolved"
	default:
		return "body"
	}
}

// Block is a run of consecutive script lines with one role
type Block struct {
	Role BlockRole

	// Lines are in reading order
	Lines []ScriptLine

	BBox model.BBox

	// PageBBox is BBox mapped back onto the page of the input glyphs. It
	// equals BBox unless the chunk was counter-rotated.
	PageBBox model.BBox

	// Marker is the list marker of a list item ("1.", "•")
	Marker string

	// List is the kind of list marker
	List ListType

	// FontSize is the font size of the first line
	FontSize float64

	// Index is the block's position in the tree
	Index int
}

// Text returns the block text with one line per script line
func (b *Block) Text() string {
	lines := make([]string, len(b.Lines))
	for i := range b.Lines {
		lines[i] = b.Lines[i].Text()
	}
	return strings.Join(lines, "\n")
}

// Spans returns the spans of every line in order
func (b *Block) Spans() []Span {
	var spans []Span
	for i := range b.Lines {
		spans = append(spans, b.Lines[i].Spans...)
	}
	return spans
}

// LineCount returns the number of script lines
func (b *Block) LineCount() int {
	return len(b.Lines)
}

// Tree is the reconstructed text of one chunk
type Tree struct {
	Blocks []Block

	// Orientation is the dominant orientation of the input glyphs. BBox
	// fields are in the counter-rotated space when it is not Rot0; PageBBox
	// fields are always in page space.
	Orientation text.Orientation

	// Chunk describes the region the glyphs came from
	Chunk model.Chunk

	// CommonFontSize is the commonest font size by glyph count
	CommonFontSize float64

	// Interline is the measured baseline separation of body lines
	Interline float64

	// Warnings are the recovered problems met while reconstructing
	Warnings []Warning
}

// Text returns the tree text with blank lines between blocks
func (t *Tree) Text() string {
	parts := make([]string, 0, len(t.Blocks))
	for i := range t.Blocks {
		if s := t.Blocks[i].Text(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ScriptLines returns every script line in reading order
func (t *Tree) ScriptLines() []ScriptLine {
	var lines []ScriptLine
	for i := range t.Blocks {
		lines = append(lines, t.Blocks[i].Lines...)
	}
	return lines
}

// Spans returns every span in reading order
func (t *Tree) Spans() []Span {
	var spans []Span
	for i := range t.Blocks {
		spans = append(spans, t.Blocks[i].Spans()...)
	}
	return spans
}

// SourceGlyphs returns every input glyph carried by the spans
func (t *Tree) SourceGlyphs() []text.Glyph {
	var glyphs []text.Glyph
	for _, sp := range t.Spans() {
		glyphs = append(glyphs, sp.SourceGlyphs()...)
	}
	return glyphs
}

// BBox returns the union of the block boxes
func (t *Tree) BBox() model.BBox {
	boxes := make([]model.BBox, len(t.Blocks))
	for i := range t.Blocks {
		boxes[i] = t.Blocks[i].BBox
	}
	return model.UnionAll(boxes...)
}

// IsEmpty returns true if nothing was reconstructed
func (t *Tree) IsEmpty() bool {
	return len(t.Blocks) == 0
}

// WarningKind classifies a recovered problem
type WarningKind int

const (
	WarningMetrics WarningKind = iota
	WarningUnresolved
	WarningOrientation
)

// String returns a string representation of the warning kind
func (k WarningKind) String() string {
	switch k {
	case WarningUnresolved:
		return "unresolved"
	case WarningOrientation:
		return "orientation"
	default:
		return "metrics"
	}
}

// Warning is a non-fatal problem reported alongside a result
type Warning struct {
	Kind    WarningKind
	Message string

	// Err is the underlying typed error, if any
	Err error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// FormatWarnings joins warnings into a multi-line message
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, w := range warnings {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}
