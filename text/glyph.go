package text

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/tsawler/glyphtext/model"
)

// Color is a normalized fill or stroke color as delivered by the upstream
// converter (for example "#000000"). The empty Color means "not set".
type Color string

// NewColor normalizes a color string so that equal colors compare equal
func NewColor(s string) Color {
	return Color(strings.ToLower(strings.TrimSpace(s)))
}

// RawGlyph is one glyph record as produced by the upstream page-description
// parser. Coordinates are pointers so that a missing value can be told apart
// from zero.
type RawGlyph struct {
	Text       string   `json:"text"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	FontFamily string   `json:"font,omitempty"`
	FontSize   float64  `json:"size"`
	Bold       bool     `json:"bold,omitempty"`
	Italic     bool     `json:"italic,omitempty"`
	Fill       string   `json:"fill,omitempty"`
	Stroke     string   `json:"stroke,omitempty"`
	Rotation   float64  `json:"rotation,omitempty"`
	Width      *float64 `json:"width,omitempty"`
}

// Glyph is one rendered character with its absolute position and style.
// Glyphs are values: the pipeline copies them and never mutates the
// caller's slice.
type Glyph struct {
	// Text is the character value (one or more code points, NFC)
	Text string

	// X, Y is the baseline origin in Y-down page space
	X, Y float64

	FontFamily string
	FontSize   float64
	Bold       bool
	Italic     bool
	Fill       Color
	Stroke     Color

	// Rotation is the glyph rotation in degrees
	Rotation float64

	// Width is the declared advance width; 0 means unknown
	Width float64

	// Seq is the index of the glyph in the caller's input, -1 for
	// synthesized glyphs
	Seq int

	// Origin is the position before any counter-rotation
	Origin model.Point

	// Synthetic marks spaces inserted by the reconstruction
	Synthetic bool
}

// NewGlyph creates a regular-weight glyph with the given position and size
func NewGlyph(s string, x, y, fontSize float64) Glyph {
	return Glyph{
		Text:     NormalizeUnicode(s),
		X:        x,
		Y:        y,
		FontSize: fontSize,
		Origin:   model.Point{X: x, Y: y},
	}
}

// SpaceAfter returns a synthetic space glyph that follows g and inherits
// its style
func SpaceAfter(g Glyph, x float64) Glyph {
	sp := g
	sp.Text = " "
	sp.X = x
	sp.Width = 0
	sp.Seq = -1
	sp.Origin = model.Point{X: x, Y: g.Y}
	sp.Synthetic = true
	return sp
}

// IsSpace returns true if the glyph carries only whitespace
func (g Glyph) IsSpace() bool {
	for _, r := range g.Text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// HasWidth returns true if the glyph declares its own advance width
func (g Glyph) HasWidth() bool {
	return g.Width > 0
}

// Extent returns the glyph box for a given advance, using ascent and
// descent expressed as fractions of the font size
func (g Glyph) Extent(advance, ascent, descent float64) model.BBox {
	return model.NewBBoxFromEdges(
		g.X,
		g.Y-ascent*g.FontSize,
		g.X+advance,
		g.Y+descent*g.FontSize,
	)
}

// String returns a compact debug representation
func (g Glyph) String() string {
	return fmt.Sprintf("%q@(%.2f,%.2f,%.2fpt)", g.Text, g.X, g.Y, g.FontSize)
}

// MalformedGlyphError reports an input record that lacks a required field.
// It is fatal for the containing chunk; the data will not change on retry.
type MalformedGlyphError struct {
	Index  int
	Field  string
	Record RawGlyph
}

func (e *MalformedGlyphError) Error() string {
	return fmt.Sprintf("malformed glyph %d (%q): invalid or missing %s", e.Index, e.Record.Text, e.Field)
}

// FromRaw validates raw records and converts them into glyphs. Seq is set
// to the record index and Origin to the record position.
func FromRaw(records []RawGlyph) ([]Glyph, error) {
	glyphs := make([]Glyph, 0, len(records))
	for i, rec := range records {
		g, err := rec.glyph(i)
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}

func (r RawGlyph) glyph(index int) (Glyph, error) {
	fail := func(field string) (Glyph, error) {
		return Glyph{}, &MalformedGlyphError{Index: index, Field: field, Record: r}
	}

	switch {
	case r.X == nil || !coordinate(*r.X):
		return fail("x")
	case r.Y == nil || !coordinate(*r.Y):
		return fail("y")
	case r.Text == "":
		return fail("text")
	case !(r.FontSize > 0) || !finite(r.FontSize):
		return fail("size")
	}

	g := Glyph{
		Text:       NormalizeUnicode(r.Text),
		X:          *r.X,
		Y:          *r.Y,
		FontFamily: r.FontFamily,
		FontSize:   r.FontSize,
		Bold:       r.Bold,
		Italic:     r.Italic,
		Fill:       NewColor(r.Fill),
		Stroke:     NewColor(r.Stroke),
		Rotation:   r.Rotation,
		Seq:        index,
		Origin:     model.Point{X: *r.X, Y: *r.Y},
	}
	if r.Width != nil && finite(*r.Width) && *r.Width > 0 {
		g.Width = *r.Width
	}
	return g, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MaxCoordinate bounds the magnitude of a glyph position. Larger values
// are malformed; line bucketing rounds Y to an int.
const MaxCoordinate = 1e9

func coordinate(f float64) bool {
	return finite(f) && math.Abs(f) <= MaxCoordinate
}

// Raw converts a glyph back into an input record
func (g Glyph) Raw() RawGlyph {
	x, y := g.X, g.Y
	r := RawGlyph{
		Text:       g.Text,
		X:          &x,
		Y:          &y,
		FontFamily: g.FontFamily,
		FontSize:   g.FontSize,
		Bold:       g.Bold,
		Italic:     g.Italic,
		Fill:       string(g.Fill),
		Stroke:     string(g.Stroke),
		Rotation:   g.Rotation,
	}
	if g.HasWidth() {
		w := g.Width
		r.Width = &w
	}
	return r
}

// Validate checks glyphs built outside FromRaw with the same rules
func Validate(glyphs []Glyph) error {
	for i, g := range glyphs {
		if _, err := g.Raw().glyph(i); err != nil {
			return err
		}
	}
	return nil
}
