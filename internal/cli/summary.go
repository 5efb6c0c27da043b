package cli

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/sumset/internal/dyadic"
	"github.com/agbru/sumset/internal/format"
	"github.com/agbru/sumset/internal/ui"
)

// SummaryRows picks the rows shown in the summary: every power of two and
// the last row.
func SummaryRows(rows []dyadic.Sizes) []dyadic.Sizes {
	var picked []dyadic.Sizes
	for i, r := range rows {
		if bits.OnesCount64(r.N) == 1 || i == len(rows)-1 {
			picked = append(picked, r)
		}
	}
	return picked
}

// FormatSummary renders the doubling-constant table. |A+A|/|A| is the
// doubling constant; |A+A|/|A|² compares it with the trivial bound.
func FormatSummary(rows []dyadic.Sizes) string {
	palette := ui.CurrentPalette()
	header := lipgloss.NewStyle().Foreground(palette.Header).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(palette.Value).Padding(0, 1).Align(lipgloss.Right)
	ratio := cell.Foreground(palette.Ratio)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(palette.Border)).
		Headers("n", "|A|", "|A+A|", "|A+A|/|A|", "|A+A|/|A|²").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col >= 3:
				return ratio
			default:
				return cell
			}
		})

	for _, r := range SummaryRows(rows) {
		density := 0.0
		if r.A > 0 {
			density = float64(r.AA) / (float64(r.A) * float64(r.A))
		}
		t.Row(
			format.FormatUint(r.N),
			format.FormatUint(r.A),
			format.FormatUint(r.AA),
			fmt.Sprintf("%.3f", r.DoublingRatio()),
			fmt.Sprintf("%.4f", density),
		)
	}
	return t.Render()
}

// DisplaySummary writes the styled summary table.
func DisplaySummary(out io.Writer, rows []dyadic.Sizes) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(out, "\n--- Doubling Constants ---\n%s\n", FormatSummary(rows))
}
