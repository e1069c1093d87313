// Package text defines the glyph records consumed by the reconstruction
// pipeline.
//
// # Input
//
// The upstream converter delivers [RawGlyph] records, one per rendered
// character. [FromRaw] validates them and produces immutable [Glyph]
// values; a record without a usable coordinate fails with
// [MalformedGlyphError]:
//
//	records, err := text.DecodeRawGlyphs(r)
//	glyphs, err := text.FromRaw(records)
//
// Characters are normalized to NFC on ingestion. [FoldCompat] gives the
// NFKC form used for width lookups.
//
// # Orientation
//
// [ClassifyRotation] snaps an angle to one of the quarter-turn
// [Orientation] values, and [DominantOrientation] picks the orientation of a
// glyph set. Rotated chunks are counter-rotated before line detection.
//
// # Direction
//
// [DetectDirection] reports whether a run of text is left-to-right or
// right-to-left so that renderers can mark RTL blocks.
package text
