package render

import (
	"strings"
	"unicode"

	"github.com/tsawler/glyphtext/layout"
)

// run is a stretch of line text sharing the attributes the output formats
// can express
type run struct {
	text   string
	bold   bool
	italic bool
	script layout.ScriptRole
}

func (r run) sameStyle(o run) bool {
	return r.bold == o.bold && r.italic == o.italic && r.script == o.script
}

// lineRuns merges the spans of a script line into runs. Spans that differ
// only in attributes no format shows (family, size, color) are joined.
func lineRuns(sl *layout.ScriptLine) []run {
	if len(sl.Spans) == 0 {
		return trimRuns([]run{{text: sl.Text()}})
	}

	var runs []run
	for _, sp := range sl.Spans {
		r := run{
			text:   sp.Text(),
			bold:   sp.Style.Bold,
			italic: sp.Style.Italic,
			script: sp.Script,
		}
		if n := len(runs); n > 0 && runs[n-1].sameStyle(r) {
			runs[n-1].text += r.text
			continue
		}
		runs = append(runs, r)
	}
	return trimRuns(runs)
}

// trimRuns strips leading and trailing whitespace from the line and drops
// runs left empty
func trimRuns(runs []run) []run {
	for len(runs) > 0 {
		runs[0].text = strings.TrimLeftFunc(runs[0].text, unicode.IsSpace)
		if runs[0].text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		n := len(runs) - 1
		runs[n].text = strings.TrimRightFunc(runs[n].text, unicode.IsSpace)
		if runs[n].text != "" {
			break
		}
		runs = runs[:n]
	}
	return runs
}

// stripMarker removes a list marker from the start of the runs. The runs
// are returned unchanged if they do not start with marker.
func stripMarker(runs []run, marker string) []run {
	if marker == "" {
		return runs
	}

	out := append([]run(nil), runs...)
	rest := marker
	for rest != "" && len(out) > 0 {
		t := out[0].text
		switch {
		case strings.HasPrefix(t, rest):
			out[0].text = t[len(rest):]
			rest = ""
		case strings.HasPrefix(rest, t):
			rest = rest[len(t):]
			out = out[1:]
		default:
			return runs
		}
	}
	if rest != "" {
		return runs
	}
	return trimRuns(out)
}

// splitSpace separates the leading and trailing whitespace of s
func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeftFunc(s, unicode.IsSpace)
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRightFunc(core, unicode.IsSpace)
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}
