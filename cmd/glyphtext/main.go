// Command glyphtext reconstructs structured text from a JSON array of
// positioned glyph records.
//
//	glyphtext [flags] [file]
//
// With no file, or with "-", the records are read from standard input.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/glyphtext"
	"github.com/tsawler/glyphtext/layout"
	"github.com/tsawler/glyphtext/model"
	"github.com/tsawler/glyphtext/render"
)

// options holds the command line flags
type options struct {
	format  string
	output  string
	page    int
	chunk   string
	verbose bool
	quiet   bool

	noNormalize bool
	noLists     bool

	wordSpace  float64
	lineEps    float64
	scriptEps  float64
	gapFactor  float64
	indentMin  float64
	xTolerance float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := layout.DefaultConfig()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "glyphtext [file]",
		Short: "Reconstruct structured text from positioned glyphs",
		Long: "glyphtext reads a JSON array of glyph records (text, x, y, size, font, bold,\n" +
			"italic, fill, stroke, rotation, width) and writes the reconstructed text as\n" +
			"plain text, Markdown or HTML.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "text", "Output format: text, markdown or html")
	f.StringVarP(&opts.output, "output", "o", "", "Write to this file instead of standard output")
	f.IntVar(&opts.page, "page", 0, "Page number used to label errors and warnings")
	f.StringVar(&opts.chunk, "chunk", "", "Chunk name used to label errors and warnings")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log stage diagnostics to standard error")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print warnings")
	f.BoolVar(&opts.noNormalize, "no-normalize", false, "Do not counter-rotate rotated text")
	f.BoolVar(&opts.noLists, "no-lists", false, "Disable list item detection")
	f.Float64Var(&opts.wordSpace, "word-space", defaults.Word.SpaceFactor, "Advance multiple above which a gap starts a new word")
	f.Float64Var(&opts.lineEps, "line-eps", defaults.Line.YEps, "Baseline distance under which glyphs share a line")
	f.Float64Var(&opts.scriptEps, "script-eps", defaults.Script.YEps, "Minimum baseline shift of a sub- or superscript line")
	f.Float64Var(&opts.gapFactor, "gap-factor", defaults.Paragraph.GapFactor, "Interline multiple above which a gap breaks a paragraph")
	f.Float64Var(&opts.indentMin, "indent-min", defaults.Paragraph.IndentMin, "Indent change that breaks a paragraph")
	f.Float64Var(&opts.xTolerance, "x-tolerance", defaults.Script.XTolerance, "Horizontal slack when grouping script lines")

	return cmd
}

// config applies the flags to the default pipeline configuration
func (o *options) config() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.Word.SpaceFactor = o.wordSpace
	cfg.Line.YEps = o.lineEps
	cfg.Script.YEps = o.scriptEps
	cfg.Script.XTolerance = o.xTolerance
	cfg.Paragraph.GapFactor = o.gapFactor
	cfg.Paragraph.IndentMin = o.indentMin
	cfg.Normalize = !o.noNormalize
	if o.noLists {
		cfg.Paragraph.ListMarkerPatterns = nil
	}
	return cfg
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var ext *glyphtext.Extractor
	if len(args) == 0 || args[0] == "-" {
		ext = glyphtext.FromReader(cmd.InOrStdin())
	} else {
		ext = glyphtext.Open(args[0])
	}

	ext = ext.
		Chunk(model.NewChunk(opts.page, opts.chunk, model.BBox{})).
		WithConfig(opts.config())
	if opts.verbose {
		ext = ext.Logger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	tree, warnings, err := ext.Tree()
	if err != nil {
		return err
	}

	// Warnings are already logged in verbose mode
	if !opts.quiet && !opts.verbose {
		for _, w := range warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
		}
	}

	if opts.output == "" {
		return render.Write(cmd.OutOrStdout(), tree, format)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := render.Write(f, tree, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
