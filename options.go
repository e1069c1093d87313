package glyphtext

import (
	"github.com/tsawler/glyphtext/layout"
	"github.com/tsawler/glyphtext/model"
)

// ExtractOptions holds configuration for reconstruction.
type ExtractOptions struct {
	// Pipeline configuration, validated by the terminal operations
	config layout.Config

	// Chunk labels the glyphs in errors and on the tree
	chunk model.Chunk

	// Region filtering: only glyphs whose origin lies in region are kept
	region    model.BBox
	hasRegion bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config: layout.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy the marker pattern slice so chained calls cannot share it
	if o.config.Paragraph.ListMarkerPatterns != nil {
		newOpts.config.Paragraph.ListMarkerPatterns = make([]string, len(o.config.Paragraph.ListMarkerPatterns))
		copy(newOpts.config.Paragraph.ListMarkerPatterns, o.config.Paragraph.ListMarkerPatterns)
	}

	return newOpts
}
