package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/glyphtext/internal/stats"
	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// GlyphIndex buckets glyphs by their Y coordinate rounded to the nearest
// integer. Glyphs keep their input order inside a bucket.
type GlyphIndex struct {
	buckets map[int][]text.Glyph
	keys    []int
}

// BuildGlyphIndex groups glyphs by rounded Y
func BuildGlyphIndex(glyphs []text.Glyph) *GlyphIndex {
	idx := &GlyphIndex{buckets: make(map[int][]text.Glyph)}
	for _, g := range glyphs {
		k := int(math.Round(g.Y))
		if _, ok := idx.buckets[k]; !ok {
			idx.keys = append(idx.keys, k)
		}
		idx.buckets[k] = append(idx.buckets[k], g)
	}
	sort.Ints(idx.keys)
	return idx
}

// Keys returns the rounded Y values in increasing order
func (idx *GlyphIndex) Keys() []int {
	return idx.keys
}

// Bucket returns the glyphs whose Y rounds to key
func (idx *GlyphIndex) Bucket(key int) []text.Glyph {
	return idx.buckets[key]
}

// Len returns the number of buckets
func (idx *GlyphIndex) Len() int {
	return len(idx.keys)
}

// Line is a run of glyphs sharing one visual baseline, sorted by X
type Line struct {
	// Y is the baseline (median glyph Y)
	Y float64

	// Glyphs are sorted left to right
	Glyphs []text.Glyph

	// BBox is the union of the glyph extents
	BBox model.BBox

	fontSize    float64
	uniformSize bool
	family      string
	uniformFont bool
	meanSize    float64
	dominant    float64
}

// newLine builds a line from glyphs already sorted by X. It reports false
// for an empty slice so that no zero-glyph line is ever constructed.
func newLine(glyphs []text.Glyph, m Metrics, sizeEps float64) (Line, bool) {
	if len(glyphs) == 0 {
		return Line{}, false
	}

	first := glyphs[0]
	l := Line{
		Glyphs:      glyphs,
		fontSize:    first.FontSize,
		uniformSize: true,
		family:      first.FontFamily,
		uniformFont: true,
	}

	ys := make([]float64, len(glyphs))
	sizes := make([]float64, len(glyphs))
	hist := stats.NewHistogram(0.01)
	boxes := make([]model.BBox, len(glyphs))

	for i, g := range glyphs {
		ys[i] = g.Y
		sizes[i] = g.FontSize
		hist.Add(g.FontSize, 1)
		boxes[i] = m.Extent(g)

		if math.Abs(g.FontSize-first.FontSize) > sizeEps {
			l.uniformSize = false
		}
		if g.FontFamily != first.FontFamily {
			l.uniformFont = false
		}
	}

	l.Y, _ = stats.Median(ys)
	l.meanSize = stats.Mean(sizes)
	l.dominant, _ = hist.Mode()

	l.BBox = model.UnionAll(boxes...)
	return l, true
}

// FontSize returns the common font size, or false if the glyphs disagree
func (l Line) FontSize() (float64, bool) {
	if !l.uniformSize {
		return 0, false
	}
	return l.fontSize, true
}

// FontFamily returns the common font family, or false if mixed
func (l Line) FontFamily() (string, bool) {
	if !l.uniformFont {
		return "", false
	}
	return l.family, true
}

// MeanFontSize returns the mean glyph font size
func (l Line) MeanFontSize() float64 {
	return l.meanSize
}

// DominantFontSize returns the common font size, or the size shared by the
// most glyphs when the line is mixed
func (l Line) DominantFontSize() float64 {
	if l.uniformSize {
		return l.fontSize
	}
	return l.dominant
}

// Text returns the glyph characters concatenated without inferred spaces
func (l Line) Text() string {
	var sb strings.Builder
	for _, g := range l.Glyphs {
		sb.WriteString(g.Text)
	}
	return sb.String()
}

// Len returns the number of glyphs
func (l Line) Len() int {
	return len(l.Glyphs)
}

// LineBuilder turns Y buckets into clean lines
type LineBuilder struct {
	config  LineConfig
	metrics Metrics
}

// NewLineBuilder creates a line builder with default configuration
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{
		config:  DefaultLineConfig(),
		metrics: DefaultMetrics(),
	}
}

// NewLineBuilderWithConfig creates a line builder with custom configuration
func NewLineBuilderWithConfig(config LineConfig, metrics Metrics) *LineBuilder {
	return &LineBuilder{
		config:  config,
		metrics: metrics,
	}
}

// Build coalesces jittered buckets, sorts each group by X and splits it
// where the font size changes. Lines are returned sorted by (Y, left X).
func (b *LineBuilder) Build(idx *GlyphIndex) []Line {
	var lines []Line
	for _, group := range b.mergeBuckets(idx) {
		for _, run := range b.splitBySize(group) {
			if l, ok := newLine(run, b.metrics, b.config.SizeEps); ok {
				lines = append(lines, l)
			}
		}
	}

	sortLines(lines)
	return lines
}

// BuildFromGlyphs is a convenience method that indexes glyphs first
func (b *LineBuilder) BuildFromGlyphs(glyphs []text.Glyph) []Line {
	return b.Build(BuildGlyphIndex(glyphs))
}

// mergeBuckets joins consecutive buckets whose mean Y values differ by
// less than YEps. Merging happens before splitting so that a split is
// never undone.
func (b *LineBuilder) mergeBuckets(idx *GlyphIndex) [][]text.Glyph {
	var groups [][]text.Glyph
	var current []text.Glyph
	prevMean := 0.0

	for i, k := range idx.Keys() {
		bucket := idx.Bucket(k)
		mean := meanY(bucket)

		if i > 0 && math.Abs(mean-prevMean) < b.config.YEps {
			current = append(current, bucket...)
		} else {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = append([]text.Glyph(nil), bucket...)
		}
		prevMean = mean
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// splitBySize sorts a group by X and cuts it wherever a glyph's size
// differs from the preceding glyph by more than SizeEps
func (b *LineBuilder) splitBySize(group []text.Glyph) [][]text.Glyph {
	sortGlyphsByX(group)

	var runs [][]text.Glyph
	start := 0
	for i := 1; i < len(group); i++ {
		if math.Abs(group[i].FontSize-group[i-1].FontSize) > b.config.SizeEps {
			runs = append(runs, group[start:i:i])
			start = i
		}
	}
	if start < len(group) {
		runs = append(runs, group[start:])
	}
	return runs
}

// sortGlyphsByX sorts by X; ties keep input sequence order
func sortGlyphsByX(glyphs []text.Glyph) {
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].X != glyphs[j].X {
			return glyphs[i].X < glyphs[j].X
		}
		return glyphs[i].Seq < glyphs[j].Seq
	})
}

func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Y != lines[j].Y {
			return lines[i].Y < lines[j].Y
		}
		return lines[i].BBox.Left() < lines[j].BBox.Left()
	})
}

func meanY(glyphs []text.Glyph) float64 {
	sum := 0.0
	for _, g := range glyphs {
		sum += g.Y
	}
	return sum / float64(len(glyphs))
}
