package layout

import (
	"github.com/tsawler/glyphtext/font"
	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// Advance returns the horizontal advance of g in page units. A declared
// width wins over the width tables. When no metrics exist the default
// width is used and the *font.FontMetricsMissingError is returned with it.
func (m Metrics) Advance(g text.Glyph) (float64, error) {
	if g.HasWidth() {
		return g.Width, nil
	}
	if m.Registry == nil {
		return font.Scale(m.DefaultWidth, g.FontSize), &font.FontMetricsMissingError{Family: g.FontFamily, Text: g.Text}
	}
	w, err := m.Registry.Width(g.FontFamily, g.Bold, g.Italic, g.Text)
	if err != nil {
		return font.Scale(m.DefaultWidth, g.FontSize), err
	}
	return font.Scale(w, g.FontSize), nil
}

// Extent returns the glyph box: its advance horizontally and the ascent
// and descent around the baseline vertically
func (m Metrics) Extent(g text.Glyph) model.BBox {
	adv, _ := m.Advance(g)
	return g.Extent(adv, m.Ascent, m.Descent)
}

// measure is Advance with missing metrics reported to diag
func (m Metrics) measure(g text.Glyph, diag *diagnostics) float64 {
	adv, err := m.Advance(g)
	if err != nil {
		diag.metricsMissing(err)
	}
	return adv
}
