// integration.go provides helpers to reconstruct every chunk of a page or
// document with one pipeline
package glyphtext

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/tsawler/glyphtext/layout"
	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// ChunkGlyphs pairs a chunk with the glyphs found in it
type ChunkGlyphs struct {
	Chunk  model.Chunk
	Glyphs []text.Glyph
}

// ReconstructChunks reconstructs each chunk independently with the default
// configuration. Trees are returned in input order.
//
// Example:
//
//	trees, warnings, err := glyphtext.ReconstructChunks(chunks)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, tree := range trees {
//	    fmt.Printf("%s: %d blocks\n", tree.Chunk, len(tree.Blocks))
//	}
func ReconstructChunks(chunks []ChunkGlyphs) ([]*layout.Tree, []Warning, error) {
	return ReconstructChunksWithConfig(chunks, layout.DefaultConfig())
}

// ReconstructChunksWithConfig reconstructs chunks concurrently with custom
// configuration. A malformed glyph fails only its own chunk, but the first
// failure in input order is returned and no trees are.
func ReconstructChunksWithConfig(chunks []ChunkGlyphs, config layout.Config) ([]*layout.Tree, []Warning, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pipeline := layout.NewPipelineWithConfig(config)
	trees := make([]*layout.Tree, len(chunks))
	errs := make([]error, len(chunks))

	// Bound the number of chunks in flight
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			trees[i], errs[i] = pipeline.ReconstructChunk(chunks[i].Chunk, chunks[i].Glyphs)
		}(i)
	}
	wg.Wait()

	var warnings []Warning
	for i, tree := range trees {
		if errs[i] != nil {
			return nil, nil, errs[i]
		}
		for _, w := range tree.Warnings {
			w.Message = fmt.Sprintf("%s: %s", tree.Chunk, w.Message)
			warnings = append(warnings, w)
		}
	}
	return trees, warnings, nil
}

// GroupByChunk assigns glyphs to the first chunk whose region contains
// their origin. A chunk with no region collects the glyphs no other chunk
// claims; glyphs claimed by nobody are dropped.
func GroupByChunk(glyphs []text.Glyph, chunks []model.Chunk) []ChunkGlyphs {
	out := make([]ChunkGlyphs, len(chunks))
	rest := -1
	for i, c := range chunks {
		out[i].Chunk = c
		if c.IsWholePage() && rest < 0 {
			rest = i
		}
	}

	for _, g := range glyphs {
		p := model.Point{X: g.X, Y: g.Y}
		target := rest
		for i, c := range chunks {
			if !c.IsWholePage() && c.Region.Contains(p) {
				target = i
				break
			}
		}
		if target >= 0 {
			out[target].Glyphs = append(out[target].Glyphs, g)
		}
	}
	return out
}
