// Package model provides the geometric primitives shared by the glyph
// reconstruction pipeline.
//
// All coordinates live in Y-down page space: Y grows toward the bottom of
// the page, so a superscript has a smaller Y than the baseline it decorates.
//
// # Geometry
//
//   - [BBox] - bounding box with intersection, union and overlap tests
//   - [Point] - 2D point with distance calculation
//   - [Matrix] - 2D affine transformation matrix, used to counter-rotate
//     rotated chunks before line detection
//
// # Chunks
//
// A [Chunk] names the region of a page whose glyphs are reconstructed
// together. It is carried through to the text tree so that results can be
// matched back to their source region.
package model
