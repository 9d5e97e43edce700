package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/diagram"
	pkgio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	layoutFlags
	asJSON   bool   // print the serialized tree instead of the indented view
	markdown string // write the normalized outline to this path
}

// parseCommand creates the parse command, which prints the tree read from an outline.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the outline tree of a file",
		Long: `Print the outline tree of a file.

Headings (#, ##, ...) and nested bullet lists (- or *) become nodes. The first
heading is the central topic. HTML files are converted first; use "-" to read
standard input.

Collapsed nodes with children are marked "+", expanded ones "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.layoutFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().StringVar(&opts.markdown, "markdown", "", "write the normalized outline to a file")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, w io.Writer, input string, opts parseOpts) error {
	text, err := pkgio.ImportOutline(input)
	if err != nil {
		return err
	}

	popts := c.baseOptions()
	popts.Outline = text
	opts.apply(&popts)
	if err := popts.ValidateForParse(); err != nil {
		return err
	}

	root := pipeline.Parse(popts)
	loggerFromContext(ctx).Debug("parsed outline", "nodes", root.Count(), "max_depth", root.MaxDepth())

	if opts.markdown != "" {
		if err := pkgio.ExportMarkdown(root, opts.markdown); err != nil {
			return err
		}
		loggerFromContext(ctx).Info("wrote outline", "path", opts.markdown)
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(diagram.FromOutline(root))
	}
	_, err = fmt.Fprint(w, root.String())
	return err
}
