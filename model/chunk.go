package model

import "fmt"

// Chunk describes a caller-defined region of a page (a figure, a table
// cell, a column) whose glyphs are reconstructed independently.
type Chunk struct {
	Page   int    // 1-indexed page number, 0 if unknown
	Name   string // Optional caller label
	Region BBox   // Region on the page; zero when the whole page is meant
}

// NewChunk creates a chunk covering region on the given page
func NewChunk(page int, name string, region BBox) Chunk {
	return Chunk{Page: page, Name: name, Region: region}
}

// IsWholePage returns true if the chunk has no explicit region
func (c Chunk) IsWholePage() bool {
	return c.Region == BBox{}
}

// String returns a short human-readable label for logs and warnings
func (c Chunk) String() string {
	label := c.Name
	if label == "" {
		label = "chunk"
	}
	if c.Page > 0 {
		return fmt.Sprintf("%s@p%d", label, c.Page)
	}
	return label
}
