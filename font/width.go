package font

import "github.com/tsawler/glyphtext/text"

// FallbackRune is the character whose advance stands in for characters a
// table does not list.
const FallbackRune = 'e'

// WidthTable maps characters to advance widths in 1000ths of an em.
// A table is read-only once built and may be shared between goroutines.
type WidthTable struct {
	Name   string
	widths map[rune]float64
}

// NewWidthTable creates a table from a rune → width map. The map is copied.
func NewWidthTable(name string, widths map[rune]float64) *WidthTable {
	w := make(map[rune]float64, len(widths))
	for r, v := range widths {
		w[r] = v
	}
	return &WidthTable{Name: name, widths: w}
}

// Len returns the number of characters with a width entry
func (t *WidthTable) Len() int {
	return len(t.widths)
}

// Width returns the advance of a single character
func (t *WidthTable) Width(r rune) (float64, bool) {
	w, ok := t.widths[r]
	return w, ok
}

// Fallback returns the advance used for unknown characters
func (t *WidthTable) Fallback() (float64, bool) {
	return t.Width(FallbackRune)
}

// StringWidth sums the advances of every character in s after
// compatibility folding, so a ligature is measured as its letters.
// Unknown characters use the fallback advance; ok is false only when a
// character is unknown and the table has no fallback.
func (t *WidthTable) StringWidth(s string) (width float64, ok bool) {
	for _, r := range text.FoldCompat(s) {
		w, found := t.Width(r)
		if !found {
			if w, found = t.Fallback(); !found {
				return 0, false
			}
		}
		width += w
	}
	return width, true
}

// Scale converts a width in 1000ths of an em to page units
func Scale(width, fontSize float64) float64 {
	return width * fontSize / 1000
}
