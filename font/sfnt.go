package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var goFonts = []struct {
	name   string
	family string
	style  Style
	data   []byte
}{
	{"Go-Regular", "Go", Style{}, goregular.TTF},
	{"Go-Bold", "Go", Style{Bold: true}, gobold.TTF},
	{"Go-Italic", "Go", Style{Italic: true}, goitalic.TTF},
	{"Go-BoldItalic", "Go", Style{Bold: true, Italic: true}, gobolditalic.TTF},
	{"Go-Mono", "GoMono", Style{}, gomono.TTF},
}

// sfntRanges lists the code point ranges read from TrueType/OpenType data
var sfntRanges = [][2]rune{
	{0x0020, 0x024F}, // Basic Latin through Latin Extended-B
	{0x0370, 0x03FF}, // Greek
	{0x0400, 0x04FF}, // Cyrillic
	{0x2000, 0x206F}, // General Punctuation
	{0x2070, 0x209F}, // Superscripts and Subscripts
	{0x20A0, 0x20CF}, // Currency Symbols
	{0x2190, 0x21FF}, // Arrows
	{0x2200, 0x22FF}, // Mathematical Operators
	{0x25A0, 0x25FF}, // Geometric Shapes
}

// NewSFNTTable builds a width table from TrueType or OpenType font data.
// Advances are normalized to 1000ths of an em.
func NewSFNTTable(name string, data []byte) (*WidthTable, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}

	upem := float64(f.UnitsPerEm())
	if upem <= 0 {
		return nil, fmt.Errorf("font %s has no units per em", name)
	}

	// Requesting one pixel per font unit yields advances in font units
	ppem := fixed.Int26_6(int(f.UnitsPerEm()) << 6)

	var buf sfnt.Buffer
	widths := make(map[rune]float64)
	for _, rng := range sfntRanges {
		for r := rng[0]; r <= rng[1]; r++ {
			idx, err := f.GlyphIndex(&buf, r)
			if err != nil || idx == 0 {
				continue
			}
			adv, err := f.GlyphAdvance(&buf, idx, ppem, xfont.HintingNone)
			if err != nil {
				continue
			}
			widths[r] = float64(adv) / 64 * 1000 / upem
		}
	}

	if len(widths) == 0 {
		return nil, fmt.Errorf("font %s maps no supported characters", name)
	}
	return &WidthTable{Name: name, widths: widths}, nil
}

// RegisterSFNT parses TrueType or OpenType data and registers it for a
// family. The style is taken from the family name ("Inter-Bold").
func (r *Registry) RegisterSFNT(family string, data []byte) error {
	t, err := NewSFNTTable(family, data)
	if err != nil {
		return err
	}
	_, style := familyKey(family)
	r.Register(family, style, t)
	return nil
}
