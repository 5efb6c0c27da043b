package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/sumset/internal/dyadic"
	"github.com/agbru/sumset/internal/progress"
)

// Row is one line of the output table: n, |A(n)| and |A(n)+A(n)|.
type Row = dyadic.Sizes

// ProgressReporter defines the interface for displaying batch progress.
// This interface decouples the orchestration layer from the presentation
// layer: spinners and progress lines live in the cli package while the
// orchestration layer focuses on coordinating shards.
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving one update per completed shard.
	//   - numShards: The number of shards in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numShards int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numShards int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numShards int, out io.Writer) {
	f(wg, progressChan, numShards, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// Recorder receives batch measurements. The metrics package provides the
// Prometheus implementation.
type Recorder interface {
	// ObserveCount records the time spent computing a single n.
	ObserveCount(n uint64, d time.Duration)
	// ShardCompleted records a finished shard and the rows it produced.
	ShardCompleted(rows int)
	// BatchFinished records the outcome of a whole batch.
	BatchFinished(rows int, d time.Duration, err error)
}

// NopRecorder discards every measurement.
type NopRecorder struct{}

func (NopRecorder) ObserveCount(uint64, time.Duration)      {}
func (NopRecorder) ShardCompleted(int)                      {}
func (NopRecorder) BatchFinished(int, time.Duration, error) {}
