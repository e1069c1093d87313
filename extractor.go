package glyphtext

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/glyphtext/layout"
	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/render"
	"github.com/tsawler/glyphtext/text"
)

// Extractor provides a fluent interface for reconstructing text from glyphs.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (only one is used)
	filename string
	raw      []text.RawGlyph
	glyphs   []text.Glyph

	decoded   bool // true if glyphs holds the decoded source
	hasSource bool // false for a zero Extractor

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
// Source slices are shared; nothing in the package writes to them.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		raw:       e.raw,
		glyphs:    e.glyphs,
		decoded:   e.decoded,
		hasSource: e.hasSource,
		options:   e.options.clone(),
		err:       e.err,
	}
}

// load decodes the source into glyphs and applies the region filter.
func (e *Extractor) load() ([]text.Glyph, error) {
	if e.err != nil {
		return nil, e.err
	}
	if !e.hasSource {
		return nil, ErrNoGlyphs
	}

	glyphs := e.glyphs
	if !e.decoded {
		raw := e.raw
		if e.filename != "" {
			f, err := os.Open(e.filename)
			if err != nil {
				return nil, fmt.Errorf("failed to open glyph file: %w", err)
			}
			defer f.Close()

			raw, err = text.DecodeRawGlyphs(f)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.filename, err)
			}
		}

		var err error
		glyphs, err = text.FromRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", e.options.chunk, err)
		}
	}

	if !e.options.hasRegion {
		return glyphs, nil
	}
	kept := make([]text.Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if e.options.region.Contains(model.Point{X: g.X, Y: g.Y}) {
			kept = append(kept, g)
		}
	}
	return kept, nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Chunk labels the glyphs with the chunk they came from. The label appears
// in errors and on the reconstructed tree.
//
// Example:
//
//	tree, _, err := glyphtext.FromGlyphs(glyphs).Chunk(model.NewChunk(2, "table-3", box)).Tree()
func (e *Extractor) Chunk(chunk model.Chunk) *Extractor {
	newExt := e.clone()
	newExt.options.chunk = chunk
	return newExt
}

// Region keeps only the glyphs whose baseline origin lies inside region
// (edges included). A chunk without a region of its own takes this one.
func (e *Extractor) Region(region model.BBox) *Extractor {
	newExt := e.clone()
	newExt.options.region = region
	newExt.options.hasRegion = true
	if newExt.options.chunk.IsWholePage() {
		newExt.options.chunk.Region = region
	}
	return newExt
}

// WithConfig replaces the pipeline configuration. The configuration is
// validated by the terminal operations.
//
// Example:
//
//	cfg := layout.DefaultConfig()
//	cfg.Word.SpaceFactor = 1.2
//	text, _, err := glyphtext.FromGlyphs(glyphs).WithConfig(cfg).Text()
func (e *Extractor) WithConfig(config layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config

	// Detach from the caller's pattern slice
	newExt.options = newExt.options.clone()
	return newExt
}

// Logger sends stage diagnostics to logger. Without one they are discarded.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.config.Logger = logger
	return newExt
}

// KeepRotation disables counter-rotation of chunks whose text runs at 90,
// 180 or 270 degrees. Lines are then built from the glyph positions as
// given.
func (e *Extractor) KeepRotation() *Extractor {
	newExt := e.clone()
	newExt.options.config.Normalize = false
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Tree reconstructs the glyphs and returns the text tree.
// Returns the tree, any warnings encountered, and an error if the source
// could not be read or a glyph is malformed.
func (e *Extractor) Tree() (*layout.Tree, []Warning, error) {
	glyphs, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	if err := e.options.config.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tree, err := layout.NewPipelineWithConfig(e.options.config).ReconstructChunk(e.options.chunk, glyphs)
	if err != nil {
		return nil, nil, err
	}
	return tree, tree.Warnings, nil
}

// Text returns the reconstructed text with blank lines between paragraphs.
//
// Example:
//
//	text, warnings, err := glyphtext.Open("page1.json").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", glyphtext.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	tree, warnings, err := e.Tree()
	if err != nil {
		return "", nil, err
	}
	return render.PlainText(tree), warnings, nil
}

// Markdown returns the reconstructed text as CommonMark. Headers become
// level 2 headings and superscripts and subscripts use ^x^ and ~x~.
func (e *Extractor) Markdown() (string, []Warning, error) {
	tree, warnings, err := e.Tree()
	if err != nil {
		return "", nil, err
	}
	return render.Markdown(tree), warnings, nil
}

// HTML returns the reconstructed text as an HTML fragment.
func (e *Extractor) HTML() (string, []Warning, error) {
	tree, warnings, err := e.Tree()
	if err != nil {
		return "", nil, err
	}
	out, err := render.HTML(tree)
	if err != nil {
		return "", warnings, err
	}
	return out, warnings, nil
}

// Lookup reconstructs the glyphs and indexes the blocks and spans of the
// tree by position.
//
// Example:
//
//	lookup, _, err := glyphtext.FromGlyphs(glyphs).Lookup()
//	if err != nil {
//	    // handle error
//	}
//	caption, ok := lookup.Nearest(figureBox.Center())
func (e *Extractor) Lookup() (*layout.BlockLookup, []Warning, error) {
	tree, warnings, err := e.Tree()
	if err != nil {
		return nil, nil, err
	}
	return layout.NewBlockLookup(tree), warnings, nil
}

// Glyphs returns the decoded glyphs after region filtering, without
// reconstructing them.
func (e *Extractor) Glyphs() ([]text.Glyph, error) {
	glyphs, err := e.load()
	if err != nil {
		return nil, err
	}
	if err := text.Validate(glyphs); err != nil {
		return nil, fmt.Errorf("chunk %s: %w", e.options.chunk, err)
	}
	return glyphs, nil
}
