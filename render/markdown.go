package render

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/glyphtext/layout"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"^", `\^`,
	"~", `\~`,
	"|", `\|`,
)

// blockStart matches line openings that Markdown would read as a block
// marker: headings, bullets, rules and ordered list numbers
var blockStart = regexp.MustCompile(`^(?:[#+=-]|\d{1,9}[.)])`)

// Markdown renders a tree as CommonMark. Headers become level 2 headings,
// list items become list entries and unresolved regions are fenced code
// blocks. Bold and italic use ** and *; scripts use ^x^ and ~x~.
func Markdown(t *layout.Tree) string {
	var sb strings.Builder
	for i := range t.Blocks {
		b := &t.Blocks[i]
		out := markdownBlock(b)
		if out == "" {
			continue
		}
		if sb.Len() > 0 {
			// Consecutive list items form one tight list
			if b.Role == layout.BlockListItem && t.Blocks[i-1].Role == layout.BlockListItem {
				sb.WriteByte('\n')
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(out)
	}
	if sb.Len() == 0 {
		return ""
	}
	sb.WriteByte('\n')
	return sb.String()
}

func markdownBlock(b *layout.Block) string {
	switch b.Role {
	case layout.BlockHeader:
		parts := make([]string, 0, len(b.Lines))
		for i := range b.Lines {
			runs := lineRuns(&b.Lines[i])
			for j := range runs {
				runs[j].bold = false
			}
			if s := markdownRuns(runs); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		return "## " + strings.Join(parts, " ")

	case layout.BlockListItem:
		return markdownListItem(b)

	case layout.BlockUnresolved:
		txt := b.Text()
		if txt == "" {
			return ""
		}
		fence := codeFence(txt)
		return fence + "\n" + txt + "\n" + fence

	default:
		lines := make([]string, 0, len(b.Lines))
		for i := range b.Lines {
			if s := markdownRuns(lineRuns(&b.Lines[i])); s != "" {
				lines = append(lines, escapeLineStart(s))
			}
		}
		return strings.Join(lines, "\n")
	}
}

func markdownListItem(b *layout.Block) string {
	prefix := "- "
	marker := ""
	switch b.List {
	case layout.ListTypeBullet:
	case layout.ListTypeNumbered:
		prefix = strings.TrimFunc(b.Marker, func(r rune) bool { return !unicode.IsDigit(r) }) + ". "
	default:
		if b.Marker != "" {
			marker = markdownEscaper.Replace(b.Marker) + " "
		}
	}
	indent := strings.Repeat(" ", len(prefix))

	var sb strings.Builder
	for i := range b.Lines {
		runs := lineRuns(&b.Lines[i])
		if i == 0 {
			runs = stripMarker(runs, b.Marker)
			sb.WriteString(prefix)
			sb.WriteString(marker)
			sb.WriteString(markdownRuns(runs))
			continue
		}
		if s := markdownRuns(runs); s != "" {
			sb.WriteByte('\n')
			sb.WriteString(indent)
			sb.WriteString(escapeLineStart(s))
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// markdownRuns renders runs with emphasis and script delimiters. Delimiters
// hug the text; surrounding whitespace stays outside so that CommonMark
// still sees them as flanking.
func markdownRuns(runs []run) string {
	var sb strings.Builder
	for _, r := range runs {
		lead, core, trail := splitSpace(r.text)
		sb.WriteString(lead)
		if core != "" {
			s := markdownEscaper.Replace(core)
			switch r.script {
			case layout.RoleSup:
				s = "^" + s + "^"
			case layout.RoleSub:
				s = "~" + s + "~"
			}
			if r.italic {
				s = "*" + s + "*"
			}
			if r.bold {
				s = "**" + s + "**"
			}
			sb.WriteString(s)
		}
		sb.WriteString(trail)
	}
	return sb.String()
}

// escapeLineStart keeps a body line from being read as a block marker
func escapeLineStart(s string) string {
	loc := blockStart.FindStringIndex(s)
	if loc == nil {
		return s
	}
	// Escape the last character of the match: "#" or the "." of "1."
	i := loc[1] - 1
	return s[:i] + `\` + s[i:]
}

// codeFence returns a backtick fence longer than any backtick run in s
func codeFence(s string) string {
	longest, n := 0, 0
	for _, r := range s {
		if r == '`' {
			n++
			if n > longest {
				longest = n
			}
			continue
		}
		n = 0
	}
	if longest < 3 {
		longest = 2
	}
	return strings.Repeat("`", longest+1)
}
