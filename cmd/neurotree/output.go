package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"neurotree/internal/models"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// dimStyle for labels
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// errorStyle for error prefixes
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary boxes
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// joinIDs formats ids separated by sep
func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

// printIDs writes one id per line
func printIDs(w io.Writer, ids []int) {
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
}

// printSummary renders a tree summary box
func printSummary(w io.Writer, s models.Summary) {
	row := func(label string, v any) string {
		return fmt.Sprintf("%s %v", dimStyle.Render(fmt.Sprintf("%-10s", label+":")), v)
	}
	content := strings.Join([]string{
		titleStyle.Render(s.Source),
		row("Nodes", s.Nodes),
		row("Leaves", s.Leaves),
		row("Branches", s.Branches),
		row("Chains", s.ChainNodes),
		row("Depth", s.MaxDepth),
		row("Segments", s.Segments),
	}, "\n")
	fmt.Fprintln(w, boxStyle.Render(content))
}
