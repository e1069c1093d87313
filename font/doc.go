// Package font provides glyph advance-width estimates for text reconstruction.
//
// Widths are kept in [WidthTable]s measured in 1000ths of an em, so a glyph's
// advance in page units is width * fontSize / 1000.
//
// # Built-in tables
//
// [DefaultRegistry] carries the Standard 14 metrics (Helvetica, Times,
// Courier, Symbol, ZapfDingbats and their bold variants) together with tables
// derived from the Go fonts:
//
//	reg := font.DefaultRegistry()
//	w, err := reg.Width("ArialMT", false, false, "e") // resolved to Helvetica
//
// # Family resolution
//
// Family names are matched after stripping subset prefixes ("ABCDEF+"),
// folding case and common PostScript suffixes, and applying the alias table
// (Arial to Helvetica, Times New Roman to Times, Courier New to Courier).
// Style words in the name ("Bold", "Italic", "Oblique") select the variant.
//
// # TrueType and OpenType data
//
// Callers can register their own fonts; advances are read with
// golang.org/x/image/font/sfnt:
//
//	err := reg.RegisterSFNT("Inter", ttfBytes)
//
// # Missing metrics
//
// Characters without an entry fall back to the table's 'e' advance. When no
// table and no fallback is available the lookup returns a
// [*FontMetricsMissingError].
package font
