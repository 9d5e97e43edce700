package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/diagram"
	pkgio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive tree explorer.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Expand and collapse an outline interactively",
		Long: `Expand and collapse an outline interactively.

Keys:
  ↑/↓ or k/j     move
  space/enter    toggle the selected node
  e              expand all
  c              collapse all
  q              quit

The status line shows how many nodes are visible and the size of the laid-out
diagram. With -o the final state is rendered to SVG on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), cmd.OutOrStdout(), args[0], flags, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "render the final state to this SVG file")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, w io.Writer, input string, flags layoutFlags, output string) error {
	text, err := pkgio.ImportOutline(input)
	if err != nil {
		return err
	}
	opts := c.baseOptions()
	opts.Outline = text
	flags.apply(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	m := NewBrowseModel(pipeline.Parse(opts), opts)
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if output == "" {
		return nil
	}

	root := final.(BrowseModel).Root
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	d, err := runner.Layout(ctx, root, opts)
	if err != nil {
		return err
	}
	opts.Formats = []string{diagram.FormatSVG}
	artifacts, err := runner.Render(ctx, d, opts)
	if err != nil {
		return err
	}
	if err := pkgio.WriteFile(output, artifacts[diagram.FormatSVG]); err != nil {
		return err
	}
	printSuccess(w, "Saved %d of %d nodes", root.VisibleCount(), root.Count())
	printFile(w, output)
	return nil
}

// =============================================================================
// BrowseModel - Interactive expand/collapse
// =============================================================================

// BrowseModel is the bubbletea model for interactive tree browsing.
type BrowseModel struct {
	Root   *outline.Node
	Opts   pipeline.Options
	Cursor int
	Height int
	Offset int

	visible []*outline.Node
	bounds  diagram.Bounds
	err     error
}

// NewBrowseModel creates a browse model over root. opts must already be validated.
func NewBrowseModel(root *outline.Node, opts pipeline.Options) BrowseModel {
	m := BrowseModel{Root: root, Opts: opts, Height: 20}
	m.refresh()
	return m
}

// refresh recomputes the visible rows and the layout bounds.
func (m *BrowseModel) refresh() {
	m.visible = m.Root.Visible()
	if m.Cursor >= len(m.visible) {
		m.Cursor = len(m.visible) - 1
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	d, err := pipeline.ComputeLayout(m.Root, m.Opts)
	m.bounds, m.err = d.Bounds, err
}

// Selected returns the node under the cursor.
func (m BrowseModel) Selected() *outline.Node {
	return m.visible[m.Cursor]
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "enter":
			n := m.Selected()
			if n != m.Root && n.HasChildren() {
				n.Expanded = !n.Expanded
				m.refresh()
			}
		case "e":
			m.Root.ExpandAll()
			m.refresh()
		case "c":
			m.Root.CollapseAll()
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Root.Text))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  e expand all  c collapse all  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	for i := m.Offset; i < end; i++ {
		n := m.visible[i]
		marker := " "
		switch {
		case n.HasChildren() && n.Expanded:
			marker = "▾"
		case n.HasChildren():
			marker = "▸"
		}
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", n.Depth), marker, n.Text)

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render("> " + line))
		case n.HasChildren() && !n.Expanded:
			b.WriteString(listNormalStyle.Render("  " + line))
		default:
			b.WriteString(listDimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(StyleWarning.Render("layout: " + m.err.Error()))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d/%d nodes visible · %.0f × %.0f px",
			len(m.visible), m.Root.Count(), m.bounds.Width, m.bounds.Height)))
	}
	return b.String()
}
