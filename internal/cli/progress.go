package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/agbru/sumset/internal/format"
	"github.com/agbru/sumset/internal/orchestration"
	"github.com/agbru/sumset/internal/progress"
)

// CLIProgressReporter shows a spinner with a progress bar and ETA.
type CLIProgressReporter struct{}

// LineProgressReporter prints one "<pct>% done, <elapsed>s since start"
// line per completed shard. It suits logs and non-terminal output.
type LineProgressReporter struct{}

var (
	_ orchestration.ProgressReporter = CLIProgressReporter{}
	_ orchestration.ProgressReporter = LineProgressReporter{}
)

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numShards int, out io.Writer) {
	DisplayProgress(wg, progressChan, numShards, out)
}

// DisplayProgress implements orchestration.ProgressReporter.
func (LineProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, out io.Writer) {
	DisplayProgressLines(wg, progressChan, out)
}

// NewProgressReporter picks the spinner for terminals and plain lines
// otherwise.
func NewProgressReporter(out io.Writer) orchestration.ProgressReporter {
	if isTerminal(out) {
		return CLIProgressReporter{}
	}
	return LineProgressReporter{}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// DisplayProgress renders a spinner whose suffix shows the shard progress
// bar and an ETA. It returns after progressChan is closed.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numShards int, out io.Writer) {
	defer wg.Done()
	if numShards <= 0 {
		for range progressChan {
		}
		return
	}

	tracker := format.NewShardProgress(numShards)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()

	var last progress.ProgressUpdate
	for update := range progressChan {
		frac, eta := tracker.Complete()
		s.UpdateSuffix(" " + format.FormatProgressBarWithETA(frac, eta, ProgressBarWidth))
		last = update
	}
	s.Stop()

	if last.Total > 0 {
		fmt.Fprintln(out, format.FormatShardLine(last.Completed, last.Total, last.Elapsed))
	}
}

// DisplayProgressLines prints one line per update until progressChan is
// closed.
func DisplayProgressLines(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, out io.Writer) {
	defer wg.Done()
	for update := range progressChan {
		fmt.Fprintln(out, format.FormatShardLine(update.Completed, update.Total, update.Elapsed))
	}
}
