package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/glyphtext/internal/stats"
	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// ScriptRole is the baseline-offset class of a line or span
type ScriptRole int

const (
	RoleNone ScriptRole = iota // main text
	RoleSup                    // smaller font, baseline above the main baseline
	RoleSub                    // smaller font, baseline below the main baseline
)

// String returns a string representation of the role
func (r ScriptRole) String() string {
	switch r {
	case RoleSup:
		return "sup"
	case RoleSub:
		return "sub"
	default:
		return "none"
	}
}

// ScriptGlyph is a glyph in the interleaved sequence of a script line
type ScriptGlyph struct {
	Glyph text.Glyph

	// Role is the role of the glyph's line
	Role ScriptRole

	// Line indexes ScriptLine.Lines
	Line int

	// BreakBefore marks the first glyph of a word inside its role run
	BreakBefore bool
}

// RoleRun is a maximal range of the interleaved sequence from one line
type RoleRun struct {
	Role       ScriptRole
	Line       int
	Start, End int
}

// AmbiguousScriptGroupError reports a group of overlapping lines that does
// not match a recognized main/superscript/subscript pattern. It is not
// fatal: the group is kept as an unresolved region.
type AmbiguousScriptGroupError struct {
	// Lines is the number of baselines in the group
	Lines int

	// Sizes are the dominant font sizes, top to bottom
	Sizes []float64

	BBox   model.BBox
	Reason string
}

func (e *AmbiguousScriptGroupError) Error() string {
	sizes := make([]string, len(e.Sizes))
	for i, s := range e.Sizes {
		sizes[i] = fmt.Sprintf("%.2f", s)
	}
	return fmt.Sprintf("ambiguous script group of %d lines (sizes %s) at (%.1f,%.1f): %s",
		e.Lines, strings.Join(sizes, "/"), e.BBox.X, e.BBox.Y, e.Reason)
}

// ScriptLine is a main line together with its optional superscript and
// subscript lines, read as one interleaved sequence
type ScriptLine struct {
	// Lines are ordered top to bottom
	Lines []Line

	// Roles parallels Lines
	Roles []ScriptRole

	// Sequence holds every glyph of Lines ordered by X
	Sequence []ScriptGlyph

	// Runs partitions Sequence into single-line ranges
	Runs []RoleRun

	// Spans are the style runs of Sequence
	Spans []Span

	BBox model.BBox

	// Unresolved is set when the group matched no known pattern; its lines
	// are then emitted one after the other as plain text
	Unresolved *AmbiguousScriptGroupError
}

// IsResolved returns true if the roles were assigned
func (s *ScriptLine) IsResolved() bool {
	return s.Unresolved == nil
}

// Main returns the main line. Unresolved groups report their first line.
func (s *ScriptLine) Main() Line {
	for i, r := range s.Roles {
		if r == RoleNone {
			return s.Lines[i]
		}
	}
	return s.Lines[0]
}

// Baseline returns the Y of the main line
func (s *ScriptLine) Baseline() float64 {
	return s.Main().Y
}

// FontSize returns the dominant font size of the main line
func (s *ScriptLine) FontSize() float64 {
	return s.Main().DominantFontSize()
}

// Left returns the left edge of the script line
func (s *ScriptLine) Left() float64 {
	return s.BBox.Left()
}

// Text returns the interleaved characters with a space at each word break.
// Spans, when built, supply the spacing instead.
func (s *ScriptLine) Text() string {
	var sb strings.Builder
	if len(s.Spans) > 0 {
		for _, sp := range s.Spans {
			sb.WriteString(sp.Text())
		}
		return strings.TrimSpace(sb.String())
	}
	for _, sg := range s.Sequence {
		if sg.BreakBefore {
			sb.WriteByte(' ')
		}
		sb.WriteString(sg.Glyph.Text)
	}
	return strings.TrimSpace(sb.String())
}

// GlyphCount returns the number of source glyphs
func (s *ScriptLine) GlyphCount() int {
	return len(s.Sequence)
}

// ScriptGrouper resolves vertically overlapping lines into script lines
type ScriptGrouper struct {
	config  ScriptConfig
	words   *WordSegmenter
	metrics Metrics
}

// NewScriptGrouper creates a script grouper with default configuration
func NewScriptGrouper() *ScriptGrouper {
	return &ScriptGrouper{
		config:  DefaultScriptConfig(),
		words:   NewWordSegmenter(),
		metrics: DefaultMetrics(),
	}
}

// NewScriptGrouperWithConfig creates a script grouper with custom configuration
func NewScriptGrouperWithConfig(config ScriptConfig, words *WordSegmenter, metrics Metrics) *ScriptGrouper {
	return &ScriptGrouper{
		config:  config,
		words:   words,
		metrics: metrics,
	}
}

// Group clusters Y-sorted lines into script lines. commonSize is the
// commonest font size of the chunk and decides which line is main.
func (g *ScriptGrouper) Group(lines []Line, commonSize float64) []ScriptLine {
	return g.group(lines, commonSize, nil)
}

func (g *ScriptGrouper) group(lines []Line, commonSize float64, diag *diagnostics) []ScriptLine {
	groups := g.cluster(lines)

	result := make([]ScriptLine, 0, len(groups))
	for _, members := range groups {
		tiers := g.tiers(members)
		sl := ScriptLine{Lines: tiers}

		boxes := make([]model.BBox, len(tiers))
		for i, l := range tiers {
			boxes[i] = l.BBox
		}
		sl.BBox = model.UnionAll(boxes...)

		roles, err := g.assignRoles(tiers, commonSize)
		if err != nil {
			err.BBox = sl.BBox
			sl.Unresolved = err
			sl.Roles = make([]ScriptRole, len(tiers))
			diag.unresolved(err)
			g.sequential(&sl, diag)
		} else {
			sl.Roles = roles
			g.interleave(&sl, diag)
		}
		result = append(result, sl)
	}

	diag.debug("script lines grouped", "lines", len(lines), "groups", len(result))
	return result
}

type openGroup struct {
	bbox    model.BBox
	members []Line
}

// cluster walks lines by Y keeping a running box per group. A line joins
// the first open group it overlaps vertically (strictly) and horizontally
// (within XTolerance); groups entirely above the line are closed.
func (g *ScriptGrouper) cluster(lines []Line) [][]Line {
	var closed [][]Line
	var open []*openGroup

	for _, l := range lines {
		// Close groups that can no longer be reached
		kept := open[:0]
		for _, og := range open {
			if og.bbox.Bottom() <= l.BBox.Top() {
				closed = append(closed, og.members)
				continue
			}
			kept = append(kept, og)
		}
		open = kept

		joined := false
		for _, og := range open {
			if og.bbox.OverlapsVertically(l.BBox) && og.bbox.OverlapsHorizontally(l.BBox, g.config.XTolerance) {
				og.members = append(og.members, l)
				og.bbox = og.bbox.Union(l.BBox)
				joined = true
				break
			}
		}
		if !joined {
			open = append(open, &openGroup{bbox: l.BBox, members: []Line{l}})
		}
	}
	for _, og := range open {
		closed = append(closed, og.members)
	}

	sort.SliceStable(closed, func(i, j int) bool {
		a, b := closed[i][0], closed[j][0]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.BBox.Left() < b.BBox.Left()
	})
	return closed
}

// tiers joins group members that share a baseline (within YEps) into one
// line per baseline, top to bottom. Size splits on a shared baseline are
// inline style changes, not script tiers.
func (g *ScriptGrouper) tiers(members []Line) []Line {
	if len(members) == 1 {
		return members
	}

	sorted := append([]Line(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	var tiers []Line
	var pending []Line
	flush := func() {
		if len(pending) == 1 {
			tiers = append(tiers, pending[0])
		} else if len(pending) > 1 {
			var glyphs []text.Glyph
			for _, l := range pending {
				glyphs = append(glyphs, l.Glyphs...)
			}
			sortGlyphsByX(glyphs)
			if l, ok := newLine(glyphs, g.metrics, 0); ok {
				tiers = append(tiers, l)
			}
		}
		pending = nil
	}

	for _, l := range sorted {
		if len(pending) > 0 && math.Abs(l.Y-pending[0].Y) > g.config.YEps {
			flush()
		}
		pending = append(pending, l)
	}
	flush()
	return tiers
}

// assignRoles applies the 1, 2 and 3 line patterns
func (g *ScriptGrouper) assignRoles(tiers []Line, commonSize float64) ([]ScriptRole, *AmbiguousScriptGroupError) {
	sizes := make([]float64, len(tiers))
	for i, l := range tiers {
		sizes[i] = l.DominantFontSize()
	}
	ambiguous := func(reason string) ([]ScriptRole, *AmbiguousScriptGroupError) {
		return nil, &AmbiguousScriptGroupError{Lines: len(tiers), Sizes: sizes, Reason: reason}
	}
	isCommon := func(size float64) bool {
		return commonSize > 0 && stats.WithinRel(size, commonSize, g.config.SizeTolerance)
	}
	smaller := func(a, b float64) bool {
		return a < b && !stats.WithinRel(a, b, g.config.SizeTolerance)
	}

	switch len(tiers) {
	case 1:
		return []ScriptRole{RoleNone}, nil

	case 2:
		top, bottom := 0, 1
		var main, other int
		switch ct, cb := isCommon(sizes[top]), isCommon(sizes[bottom]); {
		case ct && !cb:
			main, other = top, bottom
		case cb && !ct:
			main, other = bottom, top
		case ct && cb:
			return ambiguous("both lines have the commonest size")
		default:
			if !smaller(sizes[top], sizes[bottom]) && !smaller(sizes[bottom], sizes[top]) {
				return ambiguous("lines have equal sizes")
			}
			main, other = top, bottom
			if smaller(sizes[top], sizes[bottom]) {
				main, other = bottom, top
			}
		}

		if !smaller(sizes[other], sizes[main]) {
			return ambiguous("script line is not smaller than the main line")
		}
		dy := tiers[other].Y - tiers[main].Y
		if math.Abs(dy) <= g.config.YEps {
			return ambiguous("script line is not displaced")
		}

		roles := make([]ScriptRole, 2)
		roles[main] = RoleNone
		if dy < 0 {
			roles[other] = RoleSup
		} else {
			roles[other] = RoleSub
		}
		return roles, nil

	case 3:
		if !isCommon(sizes[1]) {
			return ambiguous("middle line does not have the commonest size")
		}
		if isCommon(sizes[0]) || isCommon(sizes[2]) {
			return ambiguous("outer line has the commonest size")
		}
		if !smaller(sizes[0], sizes[1]) || !smaller(sizes[2], sizes[1]) {
			return ambiguous("outer lines are not smaller than the middle line")
		}
		return []ScriptRole{RoleSup, RoleNone, RoleSub}, nil
	}

	return ambiguous("more than three lines")
}

// interleave merges the lines of a resolved group by ascending X. Ties go
// to the main line, then the superscript, then the subscript.
func (g *ScriptGrouper) interleave(sl *ScriptLine, diag *diagnostics) {
	order := []ScriptRole{RoleNone, RoleSup, RoleSub}
	cursor := make([]int, len(sl.Lines))

	total := 0
	for _, l := range sl.Lines {
		total += l.Len()
	}
	sl.Sequence = make([]ScriptGlyph, 0, total)

	for len(sl.Sequence) < total {
		best := -1
		for _, role := range order {
			for i, r := range sl.Roles {
				if r != role || cursor[i] >= sl.Lines[i].Len() {
					continue
				}
				x := sl.Lines[i].Glyphs[cursor[i]].X
				if best < 0 || x < sl.Lines[best].Glyphs[cursor[best]].X {
					best = i
				}
			}
		}
		sl.Sequence = append(sl.Sequence, ScriptGlyph{
			Glyph: sl.Lines[best].Glyphs[cursor[best]],
			Role:  sl.Roles[best],
			Line:  best,
		})
		cursor[best]++
	}

	g.markRuns(sl, diag)
}

// sequential emits the lines of an unresolved group one after the other
func (g *ScriptGrouper) sequential(sl *ScriptLine, diag *diagnostics) {
	for i, l := range sl.Lines {
		for _, gl := range l.Glyphs {
			sl.Sequence = append(sl.Sequence, ScriptGlyph{Glyph: gl, Role: RoleNone, Line: i})
		}
	}
	g.markRuns(sl, diag)

	// Each line starts a new word
	for _, run := range sl.Runs[1:] {
		sl.Sequence[run.Start].BreakBefore = true
	}
}

// markRuns records single-line runs and recomputes word boundaries inside
// each run; spacing is only meaningful within one line's run.
func (g *ScriptGrouper) markRuns(sl *ScriptLine, diag *diagnostics) {
	sl.Runs = nil
	start := 0
	for i := 1; i <= len(sl.Sequence); i++ {
		if i < len(sl.Sequence) && sl.Sequence[i].Line == sl.Sequence[start].Line {
			continue
		}
		sl.Runs = append(sl.Runs, RoleRun{
			Role:  sl.Sequence[start].Role,
			Line:  sl.Sequence[start].Line,
			Start: start,
			End:   i,
		})
		start = i
	}

	for _, run := range sl.Runs {
		glyphs := make([]text.Glyph, 0, run.End-run.Start)
		for _, sg := range sl.Sequence[run.Start:run.End] {
			glyphs = append(glyphs, sg.Glyph)
		}
		for i, b := range g.words.boundaries(glyphs, diag) {
			sl.Sequence[run.Start+i].BreakBefore = b
		}
	}
}
