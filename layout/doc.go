// Package layout reconstructs structured text from positioned glyphs.
//
// The [Pipeline] runs each stage in order over the glyphs of one chunk:
//
//	pipeline := layout.NewPipeline()
//	tree, err := pipeline.Reconstruct(glyphs)
//
// Each stage is a pure transform over the previous stage's output:
//
//   - [BuildGlyphIndex] - buckets glyphs by rounded Y
//   - [LineBuilder] - merges jittered buckets, sorts by X and splits on font size changes
//   - [WordSegmenter] - infers word boundaries from gaps and font width tables
//   - [ScriptGrouper] - groups overlapping lines into main, superscript and subscript tiers
//   - [SpanBuilder] - cuts the interleaved sequence into style runs
//   - [ParagraphAssembler] - groups script lines into body, header and list item blocks
//
// # Coordinates
//
// Page space is Y-down and a glyph's (X, Y) is its baseline origin. A
// superscript sits above the main baseline (smaller Y) and a subscript below
// it (larger Y).
//
// # Unresolved regions
//
// Overlapping lines that match no main/superscript/subscript pattern are
// not guessed. They are kept as a [ScriptLine] with Unresolved set, become a
// [BlockUnresolved] block and are reported in [Tree.Warnings].
//
// # Configuration
//
// Each stage can be configured independently:
//
//	config := layout.DefaultConfig()
//	config.Word.SpaceFactor = 1.2
//	config.Logger = slog.Default()
//	pipeline := layout.NewPipelineWithConfig(config)
//
// # Spatial lookup
//
// [BlockLookup] indexes block and span page boxes for geometric matching.
// Rotated chunks are indexed where they sit on the page:
//
//	lookup := layout.NewBlockLookup(tree)
//	captions := lookup.Search(figureBox.Expand(20))
package layout
