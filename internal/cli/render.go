package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	layoutFlags
	output      string  // output file (single format) or base path
	formats     string  // comma-separated formats
	style       string  // visual style: simple or dark
	padding     float64 // margin around the diagram
	scale       float64 // PNG scale factor
	interactive bool    // add hover and toggle script to SVG
	embedFont   bool    // embed the label font in SVG
	noCache     bool
	refresh     bool
}

// renderCommand creates the render command for generating diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an outline as a mind map",
		Long: `Render an outline as a mind map.

Writes one file per format next to the input, or to -o. With a single format
and an -o path that has an extension, that exact path is used; otherwise -o is
a base path and each format gets its own extension.

Formats: svg (default), png, pdf, json, dot, html.

Examples:
  mindmap render plan.md
  mindmap render plan.md -f svg,png --expand-all
  mindmap render plan.md -f pdf -o out/plan.pdf --style dark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.layoutFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, html (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: simple (default), dark")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "margin around the diagram in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "add hover highlighting and toggle events to SVG")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in SVG")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// pipelineOptions merges the config file with the flags that were set.
func (o renderOpts) pipelineOptions(base pipeline.Options) pipeline.Options {
	opts := base
	o.layoutFlags.apply(&opts)
	if formats := parseFormats(o.formats); len(formats) > 0 {
		opts.Formats = formats
	}
	if o.style != "" {
		opts.Style = o.style
	}
	if o.padding != 0 {
		opts.Padding = o.padding
	}
	if o.scale != 0 {
		opts.Scale = o.scale
	}
	opts.Interactive = o.interactive
	opts.EmbedFont = o.embedFont
	opts.Refresh = o.refresh
	return opts
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, input string, ro renderOpts) error {
	text, err := pkgio.ImportOutline(input)
	if err != nil {
		return err
	}

	opts := ro.pipelineOptions(c.baseOptions())
	opts.Outline = text
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+input+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Write in the requested order so output is stable.
	var paths []string
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(ro.output, input, format, len(opts.Formats))
		if slices.Contains(paths, path) {
			continue
		}
		if err := pkgio.WriteFile(path, data); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess(w, "Rendered %s", result.Tree.Text)
	for _, p := range paths {
		printFile(w, p)
	}
	printStats(w, result.Stats.NodeCount, result.Stats.VisibleCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}
