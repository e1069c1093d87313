package layout

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/tsawler/glyphtext/model"
)

// BlockLookup is a spatial index over the blocks and spans of a tree, for
// matching reconstructed text against other page geometry such as a
// figure box. It indexes PageBBox, so rotated chunks are found at their
// place on the page.
type BlockLookup struct {
	blocks rtree.RTreeG[*Block]
	spans  rtree.RTreeG[*Span]
}

// NewBlockLookup indexes the blocks and spans of t. The lookup refers to
// t's blocks; later changes to t are visible through it.
func NewBlockLookup(t *Tree) *BlockLookup {
	l := &BlockLookup{}
	for i := range t.Blocks {
		b := &t.Blocks[i]
		lo, hi := bounds(b.PageBBox)
		l.blocks.Insert(lo, hi, b)

		for j := range b.Lines {
			for k := range b.Lines[j].Spans {
				sp := &b.Lines[j].Spans[k]
				lo, hi := bounds(sp.PageBBox)
				l.spans.Insert(lo, hi, sp)
			}
		}
	}
	return l
}

func bounds(b model.BBox) (lo, hi [2]float64) {
	return [2]float64{b.Left(), b.Top()}, [2]float64{b.Right(), b.Bottom()}
}

// Len returns the number of indexed blocks
func (l *BlockLookup) Len() int {
	return l.blocks.Len()
}

// Search returns the blocks whose boxes intersect region, in tree order
func (l *BlockLookup) Search(region model.BBox) []*Block {
	var found []*Block
	lo, hi := bounds(region)
	l.blocks.Search(lo, hi, func(_, _ [2]float64, b *Block) bool {
		found = append(found, b)
		return true
	})
	sort.Slice(found, func(i, j int) bool { return found[i].Index < found[j].Index })
	return found
}

// Covered returns the blocks with at least the fraction minCover of their
// area inside region, in tree order. A block with no area counts when it
// touches region.
func (l *BlockLookup) Covered(region model.BBox, minCover float64) []*Block {
	var found []*Block
	for _, b := range l.Search(region) {
		area := b.PageBBox.Area()
		if area <= 0 {
			if b.PageBBox.Intersects(region) {
				found = append(found, b)
			}
			continue
		}
		if b.PageBBox.Intersection(region).Area()/area >= minCover {
			found = append(found, b)
		}
	}
	return found
}

// SearchSpans returns the spans whose boxes intersect region, top to
// bottom then left to right
func (l *BlockLookup) SearchSpans(region model.BBox) []*Span {
	var found []*Span
	lo, hi := bounds(region)
	l.spans.Search(lo, hi, func(_, _ [2]float64, sp *Span) bool {
		found = append(found, sp)
		return true
	})
	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i].PageBBox, found[j].PageBBox
		if a.Top() != b.Top() {
			return a.Top() < b.Top()
		}
		return a.Left() < b.Left()
	})
	return found
}

// Nearest returns the block whose box is closest to p. A block containing
// p has distance zero.
func (l *BlockLookup) Nearest(p model.Point) (*Block, bool) {
	if l.blocks.Len() == 0 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return nil, false
	}

	// Widen the window until it catches a block, then search once more
	// with the best distance so that no closer block is missed
	radius := 1.0
	var best *Block
	bestDist := math.Inf(1)
	for best == nil && !math.IsInf(radius, 1) {
		best, bestDist = l.nearestWithin(p, radius)
		radius *= 2
	}
	// The window is padded so that rounding in p ± bestDist cannot drop
	// the block already found
	if best != nil && bestDist > 0 {
		if b, _ := l.nearestWithin(p, bestDist*(1+1e-9)+1e-9); b != nil {
			best = b
		}
	}
	return best, best != nil
}

func (l *BlockLookup) nearestWithin(p model.Point, radius float64) (*Block, float64) {
	var best *Block
	bestDist := math.Inf(1)
	l.blocks.Search(
		[2]float64{p.X - radius, p.Y - radius},
		[2]float64{p.X + radius, p.Y + radius},
		func(_, _ [2]float64, b *Block) bool {
			d := boxDistance(b.PageBBox, p)
			if d < bestDist || (d == bestDist && best != nil && b.Index < best.Index) {
				best, bestDist = b, d
			}
			return true
		},
	)
	return best, bestDist
}

// boxDistance is the Euclidean distance from p to the nearest point of b
func boxDistance(b model.BBox, p model.Point) float64 {
	dx := math.Max(math.Max(b.Left()-p.X, 0), p.X-b.Right())
	dy := math.Max(math.Max(b.Top()-p.Y, 0), p.Y-b.Bottom())
	return math.Hypot(dx, dy)
}
