// Package glyphtext provides a fluent API for reconstructing structured text
// from positioned glyphs: lines, words, sub- and superscripts, style spans
// and paragraphs.
//
// Basic usage:
//
//	text, warnings, err := glyphtext.Open("glyphs.json").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", glyphtext.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := glyphtext.FromGlyphs(glyphs).
//	    Chunk(model.NewChunk(3, "caption", bbox)).
//	    Region(bbox).
//	    Markdown()
//
// For finer control, the layout package exposes every pipeline stage.
package glyphtext

import (
	"errors"
	"io"

	"github.com/tsawler/glyphtext/layout"
	"github.com/tsawler/glyphtext/text"
)

// ErrNoGlyphs is returned by terminal operations on an Extractor that was
// not created from a glyph source
var ErrNoGlyphs = errors.New("glyphtext: no glyph source")

// Warning is a non-fatal problem reported alongside a result
type Warning = layout.Warning

// FormatWarnings joins warnings into a multi-line message
func FormatWarnings(warnings []Warning) string {
	return layout.FormatWarnings(warnings)
}

// Open returns an Extractor reading a JSON array of glyph records from
// filename. The file is read by each terminal operation.
//
// Example:
//
//	text, warnings, err := glyphtext.Open("page1.json").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename:  filename,
		hasSource: true,
		options:   defaultOptions(),
	}
}

// FromReader returns an Extractor for a JSON array of glyph records read
// from r. The records are decoded immediately; a decoding error is
// returned by the first terminal operation.
func FromReader(r io.Reader) *Extractor {
	records, err := text.DecodeRawGlyphs(r)
	e := FromRaw(records)
	e.err = err
	return e
}

// FromRaw returns an Extractor for raw glyph records. Records are
// validated by the terminal operations.
func FromRaw(records []text.RawGlyph) *Extractor {
	return &Extractor{
		raw:       records,
		hasSource: true,
		options:   defaultOptions(),
	}
}

// FromGlyphs returns an Extractor for glyphs that are already decoded.
// The slice is never modified.
//
// Example:
//
//	tree, warnings, err := glyphtext.FromGlyphs(glyphs).Tree()
func FromGlyphs(glyphs []text.Glyph) *Extractor {
	return &Extractor{
		glyphs:    glyphs,
		decoded:   true,
		hasSource: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	glyphs := glyphtext.Must(glyphtext.Open("page1.json").Glyphs())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation such as
// Text() and panics if the error is non-nil. It discards warnings and
// returns just the value.
//
// Example:
//
//	text := glyphtext.MustText(glyphtext.FromGlyphs(glyphs).Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
