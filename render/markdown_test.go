package render

import (
	"bytes"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// parseMarkdown reads rendered output back with a CommonMark parser and
// counts the node kinds it finds
func parseMarkdown(t *testing.T, src []byte) (ast.Node, map[ast.NodeKind]int) {
	t.Helper()
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))
	kinds := make(map[ast.NodeKind]int)
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			kinds[n.Kind()]++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	return doc, kinds
}

func TestMarkdown_ParsesAsCommonMark(t *testing.T) {
	src := []byte(Markdown(sampleTree(t)))
	doc, kinds := parseMarkdown(t, src)

	if kinds[ast.KindHeading] != 1 {
		t.Errorf("Expected 1 heading, got %d", kinds[ast.KindHeading])
	}
	if kinds[ast.KindList] != 1 {
		t.Errorf("Expected the list items to form 1 list, got %d", kinds[ast.KindList])
	}
	if kinds[ast.KindListItem] != 2 {
		t.Errorf("Expected 2 list items, got %d", kinds[ast.KindListItem])
	}
	if kinds[ast.KindFencedCodeBlock] != 1 {
		t.Errorf("Expected 1 fenced code block, got %d", kinds[ast.KindFencedCodeBlock])
	}

	first := doc.FirstChild()
	h, ok := first.(*ast.Heading)
	if !ok {
		t.Fatalf("Expected the document to open with a heading, got %s", first.Kind())
	}
	if h.Level != 2 {
		t.Errorf("Expected a level 2 heading, got %d", h.Level)
	}
	if got := string(h.Text(src)); got != "Results" {
		t.Errorf("Expected heading text 'Results', got %q", got)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			continue
		}
		lines := fcb.Lines()
		if lines.Len() != 1 {
			t.Fatalf("Expected 1 code line, got %d", lines.Len())
		}
		seg := lines.At(0)
		if got := string(seg.Value(src)); got != "a b c\n" {
			t.Errorf("Unexpected code block content %q", got)
		}
	}
}

func TestMarkdown_EmphasisParses(t *testing.T) {
	tree := reconstruct(t,
		makeRun("plain", 0, 100, 10, false),
		makeRun("bold", 35, 100, 10, true),
		makeRun("text", 65, 100, 10, false),
	)
	src := []byte(Markdown(tree))
	doc, kinds := parseMarkdown(t, src)

	if kinds[ast.KindEmphasis] != 1 {
		t.Fatalf("Expected 1 emphasis node, got %d", kinds[ast.KindEmphasis])
	}
	var strong *ast.Emphasis
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if e, ok := n.(*ast.Emphasis); ok && entering {
			strong = e
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if strong.Level != 2 {
		t.Errorf("Expected strong emphasis, got level %d", strong.Level)
	}
	if got := string(strong.Text(src)); got != "bold" {
		t.Errorf("Expected emphasised text 'bold', got %q", got)
	}
}

func TestMarkdown_EscapedTextParses(t *testing.T) {
	tree := reconstruct(t, makeRun("#1*2", 0, 100, 10, false))
	src := []byte(Markdown(tree))
	_, kinds := parseMarkdown(t, src)

	if kinds[ast.KindHeading] != 0 || kinds[ast.KindEmphasis] != 0 {
		t.Errorf("Escaped text parsed as markup: %q", src)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got := buf.String(); got != "<p>#1*2</p>\n" {
		t.Errorf("Expected the literal text to survive, got %q", got)
	}
}
