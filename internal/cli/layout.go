package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/diagram"
	pkgio "github.com/matzehuels/mindmap/pkg/io"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Compute node positions for an outline",
		Long: `Compute node positions for an outline.

Prints a table of the visible nodes with their centers and sizes, followed by
the diagram bounds. With --json or -o the diagram is written in the same format
as 'render -f json'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], flags, output, asJSON, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the diagram JSON to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the diagram as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, w io.Writer, input string, flags layoutFlags, output string, asJSON, noCache bool) error {
	text, err := pkgio.ImportOutline(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.baseOptions()
	opts.Outline = text
	flags.apply(&opts)

	root, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}
	d, cacheHit, err := runner.LayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if output != "" {
		if err := diagram.WriteDiagramFile(d, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess(w, "Layout complete")
		printFile(w, output)
		printStats(w, root.Count(), root.VisibleCount(), cacheHit)
		fmt.Fprintln(w)
		printNextStep(w, "Render", appName+" render "+input)
		return nil
	}
	if asJSON {
		return diagram.WriteDiagram(d, w)
	}

	fmt.Fprintln(w, positionTable(d))
	b := d.Bounds
	fmt.Fprintf(w, "bounds  x %.1f..%.1f  y %.1f..%.1f  (%.1f × %.1f)\n", b.MinX, b.MaxX, b.MinY, b.MaxY, b.Width, b.Height)
	return nil
}

// positionTable renders the diagram nodes as a lipgloss table.
func positionTable(d diagram.Diagram) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		label := n.Label
		if n.IsCollapsed() {
			label += " +"
		}
		rows = append(rows, []string{
			n.ID,
			label,
			n.Side,
			fmt.Sprintf("%d", n.Depth),
			fmt.Sprintf("%.1f", n.X),
			fmt.Sprintf("%.1f", n.Y),
			fmt.Sprintf("%.1f", n.Width),
			fmt.Sprintf("%.1f", n.Height),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Side", "Depth", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if row < len(d.Nodes) && d.Nodes[row].IsRoot() && col == 1 {
				return lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
