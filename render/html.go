package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/glyphtext/layout"
	"github.com/tsawler/glyphtext/text"
)

// HTML renders a tree as an HTML fragment, one element per line of output
func HTML(t *layout.Tree) (string, error) {
	var sb strings.Builder
	for _, n := range Nodes(t) {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Nodes builds the HTML elements of a tree: <h2> for headers, <p> for body
// text, <ul> or <ol> around consecutive list items and
// <pre class="unresolved"> for unresolved regions. Paragraphs of mostly
// right-to-left text carry dir="rtl".
func Nodes(t *layout.Tree) []*html.Node {
	var nodes []*html.Node
	var list *html.Node
	ordered := false

	for i := range t.Blocks {
		b := &t.Blocks[i]
		if b.Role != layout.BlockListItem {
			list = nil
		}

		switch b.Role {
		case layout.BlockHeader:
			h := element(atom.H2)
			for j := range b.Lines {
				if j > 0 {
					h.AppendChild(textNode(" "))
				}
				runs := lineRuns(&b.Lines[j])
				for k := range runs {
					runs[k].bold = false
				}
				appendRuns(h, runs)
			}
			nodes = append(nodes, h)

		case layout.BlockListItem:
			isOrdered := b.List == layout.ListTypeNumbered ||
				b.List == layout.ListTypeLettered ||
				b.List == layout.ListTypeRoman
			if list == nil || isOrdered != ordered {
				if isOrdered {
					list = element(atom.Ol)
				} else {
					list = element(atom.Ul)
				}
				ordered = isOrdered
				nodes = append(nodes, list)
			}
			list.AppendChild(listItem(b))

		case layout.BlockUnresolved:
			pre := element(atom.Pre, html.Attribute{Key: "class", Val: "unresolved"})
			pre.AppendChild(textNode(b.Text()))
			nodes = append(nodes, pre)

		default:
			p := element(atom.P)
			if text.DetectDirection(b.Text()) == text.RTL {
				p.Attr = append(p.Attr, html.Attribute{Key: "dir", Val: "rtl"})
			}
			for j := range b.Lines {
				if j > 0 {
					p.AppendChild(textNode("\n"))
				}
				appendRuns(p, lineRuns(&b.Lines[j]))
			}
			nodes = append(nodes, p)
		}
	}
	return nodes
}

func listItem(b *layout.Block) *html.Node {
	li := element(atom.Li)
	if b.Marker != "" {
		li.Attr = append(li.Attr, html.Attribute{Key: "data-marker", Val: b.Marker})
	}
	for j := range b.Lines {
		runs := lineRuns(&b.Lines[j])
		if j == 0 {
			runs = stripMarker(runs, b.Marker)
		} else {
			li.AppendChild(textNode("\n"))
		}
		appendRuns(li, runs)
	}
	return li
}

// appendRuns adds runs to parent, nesting <b>, <i>, <sup> and <sub> as
// needed
func appendRuns(parent *html.Node, runs []run) {
	for _, r := range runs {
		n := textNode(r.text)
		switch r.script {
		case layout.RoleSup:
			n = wrap(atom.Sup, n)
		case layout.RoleSub:
			n = wrap(atom.Sub, n)
		}
		if r.italic {
			n = wrap(atom.I, n)
		}
		if r.bold {
			n = wrap(atom.B, n)
		}
		parent.AppendChild(n)
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func wrap(a atom.Atom, child *html.Node) *html.Node {
	n := element(a)
	n.AppendChild(child)
	return n
}
