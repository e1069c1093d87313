package layout

import (
	"fmt"

	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/text"
)

// Pipeline runs every reconstruction stage over the glyphs of one chunk:
// lines, words, script lines, spans and blocks. A Pipeline holds only
// read-only configuration and may be shared by concurrent callers.
type Pipeline struct {
	config     Config
	lines      *LineBuilder
	words      *WordSegmenter
	scripts    *ScriptGrouper
	spans      *SpanBuilder
	paragraphs *ParagraphAssembler
}

// NewPipeline creates a pipeline with default configuration
func NewPipeline() *Pipeline {
	return NewPipelineWithConfig(DefaultConfig())
}

// NewPipelineWithConfig creates a pipeline with custom configuration
func NewPipelineWithConfig(config Config) *Pipeline {
	words := NewWordSegmenterWithConfig(config.Word, config.Metrics)
	return &Pipeline{
		config:     config,
		lines:      NewLineBuilderWithConfig(config.Line, config.Metrics),
		words:      words,
		scripts:    NewScriptGrouperWithConfig(config.Script, words, config.Metrics),
		spans:      NewSpanBuilderWithConfig(config.Span, config.Metrics),
		paragraphs: NewParagraphAssemblerWithConfig(config.Paragraph),
	}
}

// Config returns the pipeline configuration
func (p *Pipeline) Config() Config {
	return p.config
}

// Reconstruct builds the text tree of a whole-page chunk
func (p *Pipeline) Reconstruct(glyphs []text.Glyph) (*Tree, error) {
	return p.ReconstructChunk(model.Chunk{}, glyphs)
}

// ReconstructChunk builds the text tree of the glyphs of one chunk. The
// input slice is not modified; each copied glyph's Seq is set to its input
// index. A malformed glyph fails the whole chunk with a wrapped
// *text.MalformedGlyphError.
func (p *Pipeline) ReconstructChunk(chunk model.Chunk, glyphs []text.Glyph) (*Tree, error) {
	if err := text.Validate(glyphs); err != nil {
		return nil, fmt.Errorf("chunk %s: %w", chunk, err)
	}

	diag := newDiagnostics(p.config.Logger)
	tree := &Tree{Chunk: chunk, Orientation: text.OrientationAny}
	if len(glyphs) == 0 {
		return tree, nil
	}

	work := make([]text.Glyph, len(glyphs))
	for i, g := range glyphs {
		g.Seq = i
		if g.Origin == (model.Point{}) {
			g.Origin = model.Point{X: g.X, Y: g.Y}
		}
		work[i] = g
	}

	toPage := model.Identity()
	if p.config.Normalize {
		work, tree.Orientation, toPage = normalize(work)
		if tree.Orientation == text.RotIrregular {
			diag.orientation(fmt.Sprintf("chunk %s has irregular rotation; reconstructed unrotated", chunk))
		}
	} else {
		tree.Orientation = text.DominantOrientation(work)
	}

	idx := BuildGlyphIndex(work)
	lines := p.lines.Build(idx)
	diag.debug("lines built", "chunk", chunk.String(), "buckets", idx.Len(), "lines", len(lines))

	tree.CommonFontSize = CommonFontSize(work)
	scriptLines := p.scripts.group(lines, tree.CommonFontSize, diag)

	for i := range scriptLines {
		scriptLines[i].Spans = p.spans.build(&scriptLines[i], diag)
	}

	tree.Interline = p.paragraphs.Interline(scriptLines, tree.CommonFontSize)
	tree.Blocks = p.paragraphs.assemble(scriptLines, tree.CommonFontSize, tree.Interline, diag)
	setPageBoxes(tree.Blocks, toPage)
	tree.Warnings = diag.warnings
	return tree, nil
}
