package layout

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/glyphtext/font"
)

// Metrics estimates glyph geometry from font width tables
type Metrics struct {
	// Registry resolves font families to width tables
	Registry *font.Registry

	// DefaultWidth is the advance, in 1000ths of an em, used when a
	// character has no metrics at all (default: 500)
	DefaultWidth float64

	// Ascent and Descent are the glyph extent above and below the
	// baseline as fractions of the font size (default: 0.7 and 0.2)
	Ascent  float64
	Descent float64
}

// DefaultMetrics returns metrics backed by the default font registry
func DefaultMetrics() Metrics {
	return Metrics{
		Registry:     font.DefaultRegistry(),
		DefaultWidth: 500,
		Ascent:       0.7,
		Descent:      0.2,
	}
}

// LineConfig holds configuration for line building
type LineConfig struct {
	// YEps merges Y buckets whose mean baselines differ by less than this
	// many page units (default: 0.5)
	YEps float64

	// SizeEps splits a bucket where consecutive glyph sizes differ by more
	// than this many points (default: 0.01)
	SizeEps float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		YEps:    0.5,
		SizeEps: 0.01,
	}
}

// WordConfig holds configuration for word segmentation
type WordConfig struct {
	// SpaceFactor scales the previous glyph's expected advance; a larger
	// origin-to-origin gap starts a new word (default: 1.4)
	SpaceFactor float64
}

// DefaultWordConfig returns sensible default configuration
func DefaultWordConfig() WordConfig {
	return WordConfig{
		SpaceFactor: 1.4,
	}
}

// ScriptConfig holds configuration for script line grouping
type ScriptConfig struct {
	// XTolerance is the horizontal slack allowed when testing whether a
	// line overlaps a group (default: 2.0)
	XTolerance float64

	// YEps is the minimum baseline displacement of a script line and the
	// distance under which lines share a baseline (default: 0.5)
	YEps float64

	// SizeTolerance is the relative tolerance for matching the commonest
	// font size (default: 0.01)
	SizeTolerance float64
}

// DefaultScriptConfig returns sensible default configuration
func DefaultScriptConfig() ScriptConfig {
	return ScriptConfig{
		XTolerance:    2.0,
		YEps:          0.5,
		SizeTolerance: 0.01,
	}
}

// SpanConfig holds configuration for style span building
type SpanConfig struct {
	// SizeEps is the font size difference that starts a new span
	// (default: 0.02)
	SizeEps float64

	// SuscriptEps is the baseline jump that starts a new span and marks
	// an undeclared script (default: 0.5)
	SuscriptEps float64

	// SpaceFactor is the edge gap, as a fraction of the font size, above
	// which a synthetic space is inserted between spans (default: 0.15)
	SpaceFactor float64
}

// DefaultSpanConfig returns sensible default configuration
func DefaultSpanConfig() SpanConfig {
	return SpanConfig{
		SizeEps:     0.02,
		SuscriptEps: 0.5,
		SpaceFactor: 0.15,
	}
}

// ParagraphConfig holds configuration for paragraph assembly
type ParagraphConfig struct {
	// IndentMin is the left indent increase that breaks a paragraph
	// (default: 1.0)
	IndentMin float64

	// GapFactor breaks a paragraph when the baseline gap exceeds the
	// interline separation times this factor (default: 1.15)
	GapFactor float64

	// SizeChangeRatio breaks a paragraph on a relative font size change
	// larger than this (default: 0.02)
	SizeChangeRatio float64

	// HeaderSizeRatio is the minimum size relative to the commonest size
	// for a bold line to be a header (default: 1.02)
	HeaderSizeRatio float64

	// InterlineFallback multiplies the commonest size when no interline
	// separation can be measured (default: 1.2)
	InterlineFallback float64

	// ListMarkerPatterns are regular expressions matched against the start
	// of a line's text. An empty list disables list detection.
	ListMarkerPatterns []string
}

// DefaultParagraphConfig returns sensible default configuration
func DefaultParagraphConfig() ParagraphConfig {
	return ParagraphConfig{
		IndentMin:         1.0,
		GapFactor:         1.15,
		SizeChangeRatio:   0.02,
		HeaderSizeRatio:   1.02,
		InterlineFallback: 1.2,
		ListMarkerPatterns: []string{
			`^\(\d{1,3}\)`,           // (1)
			`^\d{1,3}[.)]`,           // 1. or 1)
			`^\(?[ivxlcdm]{1,6}[.)]`, // iv. or (iv)
			`^\(?[IVXLCDM]{1,6}[.)]`, // IV. or (IV)
			`^\(?[a-zA-Z][.)]`,       // a. or (a)
			`^[•◦▪‣●○■□➢►→–\-*]`,     // bullets
		},
	}
}

// Config aggregates the configuration of every pipeline stage
type Config struct {
	Metrics   Metrics
	Line      LineConfig
	Word      WordConfig
	Script    ScriptConfig
	Span      SpanConfig
	Paragraph ParagraphConfig

	// Normalize counter-rotates chunks whose dominant orientation is a
	// non-zero multiple of 90 degrees
	Normalize bool

	// Logger receives stage diagnostics; nil discards them
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults for every
// stage
func DefaultConfig() Config {
	return Config{
		Metrics:   DefaultMetrics(),
		Line:      DefaultLineConfig(),
		Word:      DefaultWordConfig(),
		Script:    DefaultScriptConfig(),
		Span:      DefaultSpanConfig(),
		Paragraph: DefaultParagraphConfig(),
		Normalize: true,
	}
}

// Validate reports tolerances that cannot work and list marker patterns
// that do not compile
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("word space factor", c.Word.SpaceFactor)
	positive("span space factor", c.Span.SpaceFactor)
	positive("paragraph gap factor", c.Paragraph.GapFactor)
	positive("interline fallback", c.Paragraph.InterlineFallback)
	positive("header size ratio", c.Paragraph.HeaderSizeRatio)

	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	nonNegative("line y tolerance", c.Line.YEps)
	nonNegative("line size tolerance", c.Line.SizeEps)
	nonNegative("script x tolerance", c.Script.XTolerance)
	nonNegative("script y tolerance", c.Script.YEps)
	nonNegative("span size tolerance", c.Span.SizeEps)
	nonNegative("suscript tolerance", c.Span.SuscriptEps)
	nonNegative("indent minimum", c.Paragraph.IndentMin)
	nonNegative("default glyph width", c.Metrics.DefaultWidth)

	for _, p := range c.Paragraph.ListMarkerPatterns {
		if _, err := compileMarker(p); err != nil {
			errs = append(errs, fmt.Errorf("invalid list marker pattern %q: %w", p, err))
		}
	}
	return errors.Join(errs...)
}
