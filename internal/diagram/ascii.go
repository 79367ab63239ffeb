// Package diagram renders grading curves: an ASCII sketch for the terminal
// and a log-axis plot for image export, both against the normative envelope
// of the selected category.
package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Curve is one sieve analysis to draw. Sieves run from the largest opening
// down; a sieve absent from Passing is skipped.
type Curve struct {
	Name    string
	Sieves  []string
	Passing map[string]float64
}

// Envelope is the allowable band to draw behind a curve.
type Envelope struct {
	Name   string
	Sieves []string
	Max    map[string]float64
	Min    map[string]float64
}

// RenderASCII draws the cumulative passing percentages as a terminal graph,
// smallest opening on the left the way grading charts are read.
func RenderASCII(c Curve, height int) string {
	var series []float64
	var labels []string
	for i := len(c.Sieves) - 1; i >= 0; i-- {
		if p, ok := c.Passing[c.Sieves[i]]; ok {
			series = append(series, p)
			labels = append(labels, c.Sieves[i])
		}
	}
	if len(series) == 0 {
		return "  (no grading data)\n"
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("%s, %% passing, finest to coarsest", c.Name)),
	)

	var sb strings.Builder
	sb.WriteString(graph)
	sb.WriteString("\n\n  Sieves (left to right):\n")
	for i, label := range labels {
		sb.WriteString(fmt.Sprintf("  %2d. %-22s %6.1f %%\n", i+1, label, series[i]))
	}
	return sb.String()
}

// DrawSummaryBox frames a titled block of result lines for terminal output.
func DrawSummaryBox(title string, lines []string) string {
	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	var sb strings.Builder
	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))
	return sb.String()
}
