package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/sumset/internal/dyadic"
	"github.com/agbru/sumset/internal/format"
	"github.com/agbru/sumset/internal/table"
	"github.com/agbru/sumset/internal/ui"
	"github.com/agbru/sumset/internal/verify"
)

// PrintTable writes the table to out in the persisted text format.
func PrintTable(out io.Writer, rows []dyadic.Sizes) error {
	return table.Encode(out, rows)
}

// DisplayBatchResult reports a persisted table.
func DisplayBatchResult(out io.Writer, path string, rows []dyadic.Sizes, elapsed time.Duration) {
	fmt.Fprintf(out, "\n%s✓ %s rows computed in %s%s\n",
		ui.ColorGreen(), format.FormatUint(uint64(len(rows))), format.FormatExecutionDuration(elapsed), ui.ColorReset())
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		fmt.Fprintf(out, "n = %d: |A| = %s, |A+A| = %s\n",
			last.N, format.FormatUint(last.A), format.FormatUint(last.AA))
	}
	fmt.Fprintf(out, "Table saved to: %s%s%s\n", ui.ColorCyan(), path, ui.ColorReset())
}

// FormatVerifyResult returns the report line for a single n.
func FormatVerifyResult(r verify.Result) string {
	switch r.Outcome {
	case verify.Match:
		return fmt.Sprintf("%sAll good for %d%s", ui.ColorGreen(), r.N, ui.ColorReset())
	case verify.AMismatch:
		return fmt.Sprintf("%sWARNING: |A| mismatch for %d: got %d, brute force %d%s",
			ui.ColorRed(), r.N, r.Got.A, r.Want.A, ui.ColorReset())
	default:
		return fmt.Sprintf("%sWARNING: |A+A| mismatch for %d: got %d, brute force %d%s",
			ui.ColorRed(), r.N, r.Got.AA, r.Want.AA, ui.ColorReset())
	}
}

// DisplayVerifyResult writes the report line for r. Matches are only shown
// when verbose is set.
func DisplayVerifyResult(out io.Writer, r verify.Result, verbose bool) {
	if r.Outcome == verify.Match && !verbose {
		return
	}
	fmt.Fprintln(out, FormatVerifyResult(r))
}

// DisplayVerifySummary writes the closing line of a verification run.
func DisplayVerifySummary(out io.Writer, report verify.Report) {
	total := len(report.Results)
	if mismatches := report.Mismatches(); mismatches > 0 {
		fmt.Fprintf(out, "\n%sVerification failed: %d of %d values disagree with brute force.%s\n",
			ui.ColorRed(), mismatches, total, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "\n%sVerification passed: %d values match brute force.%s\n",
		ui.ColorGreen(), total, ui.ColorReset())
}
