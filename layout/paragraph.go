package layout

import (
	"math"

	"github.com/tsawler/glyphtext/internal/stats"
	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// CommonFontSize returns the font size carried by the most non-space
// glyphs, bucketed to 0.01pt. Ties go to the smaller size. It returns 0 for
// no glyphs.
func CommonFontSize(glyphs []text.Glyph) float64 {
	hist := stats.NewHistogram(0.01)
	spaces := stats.NewHistogram(0.01)
	for _, g := range glyphs {
		if g.IsSpace() {
			spaces.Add(g.FontSize, 1)
			continue
		}
		hist.Add(g.FontSize, 1)
	}
	if size, ok := hist.Mode(); ok {
		return size
	}
	size, _ := spaces.Mode()
	return size
}

// ParagraphAssembler groups script lines into body, header and list item
// blocks. It is a single forward pass with no backtracking.
type ParagraphAssembler struct {
	config      ParagraphConfig
	classifiers []Classifier
}

// NewParagraphAssembler creates a paragraph assembler with default configuration
func NewParagraphAssembler() *ParagraphAssembler {
	return NewParagraphAssemblerWithConfig(DefaultParagraphConfig())
}

// NewParagraphAssemblerWithConfig creates a paragraph assembler with custom configuration
func NewParagraphAssemblerWithConfig(config ParagraphConfig) *ParagraphAssembler {
	return &ParagraphAssembler{
		config:      config,
		classifiers: DefaultClassifiers(config),
	}
}

// WithClassifiers replaces the classifier chain, keeping precedence order
func (a *ParagraphAssembler) WithClassifiers(classifiers ...Classifier) *ParagraphAssembler {
	return &ParagraphAssembler{
		config:      a.config,
		classifiers: classifiers,
	}
}

// Interline returns the median positive baseline separation between
// consecutive resolved lines set at the commonest size, or
// InterlineFallback times the commonest size when none is measurable
func (a *ParagraphAssembler) Interline(lines []ScriptLine, commonSize float64) float64 {
	var deltas []float64
	for i := 1; i < len(lines); i++ {
		prev, cur := &lines[i-1], &lines[i]
		if !prev.IsResolved() || !cur.IsResolved() {
			continue
		}
		if !stats.WithinRel(prev.FontSize(), commonSize, 0.01) || !stats.WithinRel(cur.FontSize(), commonSize, 0.01) {
			continue
		}
		if d := cur.Baseline() - prev.Baseline(); d > 0 {
			deltas = append(deltas, d)
		}
	}
	if m, ok := stats.Median(deltas); ok {
		return m
	}
	return commonSize * a.config.InterlineFallback
}

// blockState is the block being built
type blockState struct {
	block Block

	// contLeft is the left edge of the first continuation line of a list item
	contLeft float64
	hasCont  bool
}

// Assemble groups script lines, in reading order, into blocks
func (a *ParagraphAssembler) Assemble(lines []ScriptLine, commonSize float64) []Block {
	return a.assemble(lines, commonSize, a.Interline(lines, commonSize), nil)
}

func (a *ParagraphAssembler) assemble(lines []ScriptLine, commonSize, interline float64, diag *diagnostics) []Block {
	var blocks []Block
	var cur *blockState

	flush := func() {
		if cur != nil {
			blocks = append(blocks, a.finish(cur.block, len(blocks)))
			cur = nil
		}
	}
	open := func(sl ScriptLine, c Classification) {
		flush()
		cur = &blockState{block: Block{Role: c.Role, Marker: c.Marker, List: c.List, Lines: []ScriptLine{sl}}}
	}

	for i := range lines {
		sl := lines[i]

		if !sl.IsResolved() {
			open(sl, Classification{Role: BlockUnresolved})
			flush()
			continue
		}

		c := classify(a.classifiers, &sl, commonSize)
		if cur == nil {
			open(sl, c)
			continue
		}

		prev := &cur.block.Lines[len(cur.block.Lines)-1]
		gapOrSize := a.gapBreak(prev, &sl, interline) || a.sizeBreak(prev, &sl)

		switch c.Role {
		case BlockHeader:
			if cur.block.Role == BlockHeader && !gapOrSize {
				cur.block.Lines = append(cur.block.Lines, sl)
				continue
			}
			open(sl, c)

		case BlockListItem:
			open(sl, c)

		default:
			switch cur.block.Role {
			case BlockBody:
				if !gapOrSize && !a.indentBreak(prev, &sl) {
					cur.block.Lines = append(cur.block.Lines, sl)
					continue
				}
			case BlockListItem:
				if !gapOrSize && a.continuesItem(cur, &sl) {
					if !cur.hasCont {
						cur.contLeft, cur.hasCont = sl.Left(), true
					}
					cur.block.Lines = append(cur.block.Lines, sl)
					continue
				}
			}
			open(sl, c)
		}
	}
	flush()

	diag.debug("blocks assembled", "lines", len(lines), "blocks", len(blocks), "interline", interline)
	return blocks
}

// gapBreak reports a baseline step backwards or wider than the interline
// separation allows
func (a *ParagraphAssembler) gapBreak(prev, sl *ScriptLine, interline float64) bool {
	d := sl.Baseline() - prev.Baseline()
	return d <= 0 || d > interline*a.config.GapFactor
}

// sizeBreak reports a relative font size change beyond SizeChangeRatio
func (a *ParagraphAssembler) sizeBreak(prev, sl *ScriptLine) bool {
	return !stats.WithinRel(sl.FontSize(), prev.FontSize(), a.config.SizeChangeRatio)
}

// indentBreak reports a left indent increase beyond IndentMin
func (a *ParagraphAssembler) indentBreak(prev, sl *ScriptLine) bool {
	return sl.Left()-prev.Left() > a.config.IndentMin
}

// continuesItem reports whether a body line belongs to the open list item:
// it must not be outdented past the marker line and must keep the margin
// of earlier continuation lines
func (a *ParagraphAssembler) continuesItem(cur *blockState, sl *ScriptLine) bool {
	first := &cur.block.Lines[0]
	if sl.Left() < first.Left()-a.config.IndentMin {
		return false
	}
	if cur.hasCont && math.Abs(sl.Left()-cur.contLeft) > a.config.IndentMin {
		return false
	}
	return true
}

func (a *ParagraphAssembler) finish(b Block, index int) Block {
	boxes := make([]model.BBox, len(b.Lines))
	for i := range b.Lines {
		boxes[i] = b.Lines[i].BBox
	}
	b.BBox = model.UnionAll(boxes...)
	b.FontSize = b.Lines[0].FontSize()
	b.Index = index
	return b
}
