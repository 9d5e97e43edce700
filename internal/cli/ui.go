package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle renders the map title in the browser header.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleWarning renders recoverable problems.
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	stylePath    = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleFresh   = lipgloss.NewStyle().Foreground(colorGray)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleOK.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleFail.Render("✗")+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render("→")+" "+stylePath.Render(path))
}

// printStats prints "N nodes · M visible · cached|fresh". The visible count is
// omitted when every node is visible.
func printStats(w io.Writer, nodeCount, visibleCount int, cached bool) {
	parts := []string{fmt.Sprintf("%d nodes", nodeCount)}
	if visibleCount != nodeCount {
		parts = append(parts, fmt.Sprintf("%d visible", visibleCount))
	}
	sep := StyleDim.Render(" · ")

	status := styleFresh.Render("fresh")
	if cached {
		status = styleOK.Render("cached")
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · "))+sep+status)
}

func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
