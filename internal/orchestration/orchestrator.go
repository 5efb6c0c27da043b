package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/sumset/internal/dyadic"
	apperrors "github.com/agbru/sumset/internal/errors"
	"github.com/agbru/sumset/internal/logging"
	"github.com/agbru/sumset/internal/progress"
)

// ExecMode selects how shards are scheduled.
type ExecMode int

const (
	// ExecPool runs shards on an errgroup bounded by Options.Jobs.
	ExecPool ExecMode = iota
	// ExecInline runs shards one after another on the calling goroutine.
	ExecInline
)

// String returns the flag spelling of the mode.
func (m ExecMode) String() string {
	switch m {
	case ExecPool:
		return "pool"
	case ExecInline:
		return "inline"
	default:
		return fmt.Sprintf("ExecMode(%d)", int(m))
	}
}

// ParseExecMode resolves a flag value into an ExecMode.
func ParseExecMode(s string) (ExecMode, error) {
	switch s {
	case "pool", "":
		return ExecPool, nil
	case "inline":
		return ExecInline, nil
	default:
		return ExecPool, apperrors.NewConfigError("unknown execution mode %q (available: pool, inline)", s)
	}
}

// Default batch parameters.
const (
	DefaultShards = 40
)

// Options configures a batch run.
type Options struct {
	// N is the last n of the batch; rows are produced for 1..N.
	N uint64
	// Shards is the requested number of shards. Fewer are used when N < Shards.
	Shards int
	// Jobs bounds the number of shards computed concurrently in ExecPool mode.
	Jobs int
	// Mode selects the scheduling strategy.
	Mode ExecMode
	// Logger receives per-shard debug events. Nil discards them.
	Logger logging.Logger
	// Recorder receives measurements. Nil discards them.
	Recorder Recorder
}

func (o Options) validate() error {
	if o.N == 0 {
		return apperrors.ValidationError{Field: "n", Message: "must be a positive integer"}
	}
	if o.Shards <= 0 {
		return apperrors.ValidationError{Field: "shards", Message: "must be greater than zero"}
	}
	if o.Mode == ExecPool && o.Jobs <= 0 {
		return apperrors.ValidationError{Field: "jobs", Message: "must be greater than zero"}
	}
	return nil
}

var tracer = otel.Tracer("github.com/agbru/sumset/internal/orchestration")

// Run computes one row per n in [1, opts.N] using counter.
//
// The range is partitioned into shards which are scheduled according to
// opts.Mode. Each shard computes its rows into a private batch, and the
// batches are merged and ordered by n once every shard has finished. One
// progress update is sent to reporter per completed shard; the reporter
// goroutine has drained the channel by the time Run returns.
//
// The run is all-or-nothing: if any shard fails, no rows are returned and
// the error identifies the shard (ShardError). Cancelling ctx stops the
// remaining work and surfaces the context error.
func Run(ctx context.Context, counter dyadic.Counter, opts Options, reporter ProgressReporter, out io.Writer) ([]Row, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	shards, err := Partition(opts.N, opts.Shards)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewZerologAdapter(zerolog.Nop())
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if reporter == nil {
		reporter = NullProgressReporter{}
	}

	ctx, span := tracer.Start(ctx, "orchestration.Run", trace.WithAttributes(
		attribute.String("counter", counter.Name()),
		attribute.Int64("n", int64(opts.N)),
		attribute.Int("shards", len(shards)),
		attribute.Int("jobs", opts.Jobs),
		attribute.String("mode", opts.Mode.String()),
	))
	defer span.End()

	start := time.Now()
	// One slot per shard: a send never blocks a worker.
	progressChan := make(chan progress.ProgressUpdate, len(shards))
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(shards), out)

	batches := make([][]Row, len(shards))
	var (
		mu        sync.Mutex
		completed int
	)
	runShard := func(ctx context.Context, s Shard) error {
		rows, err := computeShard(ctx, counter, s, recorder)
		if err != nil {
			return err
		}
		batches[s.Index] = rows
		recorder.ShardCompleted(len(rows))
		logger.Debug("shard completed",
			logging.Int("shard", s.Index),
			logging.Uint64("first", s.First),
			logging.Uint64("last", s.Last))

		mu.Lock()
		completed++
		progressChan <- progress.ProgressUpdate{
			ShardIndex: s.Index,
			Completed:  completed,
			Total:      len(shards),
			Rows:       len(rows),
			Elapsed:    time.Since(start),
		}
		mu.Unlock()
		return nil
	}

	switch opts.Mode {
	case ExecInline:
		for _, s := range shards {
			if err = runShard(ctx, s); err != nil {
				break
			}
		}
	default:
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Jobs)
		for _, s := range shards {
			g.Go(func() error { return runShard(gctx, s) })
		}
		err = g.Wait()
	}

	close(progressChan)
	displayWg.Wait()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recorder.BatchFinished(0, time.Since(start), err)
		return nil, err
	}

	rows, err := mergeBatches(batches, opts.N)
	recorder.BatchFinished(len(rows), time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

// computeShard produces the rows of one shard. A panicking counter is
// reported as a ShardError rather than taking down the process.
func computeShard(ctx context.Context, counter dyadic.Counter, s Shard, recorder Recorder) (rows []Row, err error) {
	ctx, span := tracer.Start(ctx, "orchestration.shard", trace.WithAttributes(
		attribute.Int("shard", s.Index),
		attribute.Int64("first", int64(s.First)),
		attribute.Int64("last", int64(s.Last)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = apperrors.ShardError{Shard: s.Index, First: s.First, Last: s.Last, Cause: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	rows = make([]Row, 0, s.Len())
	for n := s.First; n <= s.Last; n++ {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.ShardError{Shard: s.Index, First: s.First, Last: s.Last, Cause: err}
		}
		t0 := time.Now()
		sizes, err := counter.Count(ctx, n)
		if err != nil {
			return nil, apperrors.ShardError{Shard: s.Index, First: s.First, Last: s.Last, Cause: err}
		}
		recorder.ObserveCount(n, time.Since(t0))
		rows = append(rows, sizes)
	}
	return rows, nil
}

// mergeBatches concatenates the shard batches and orders the rows by n. The
// result must hold exactly one row for each n in [1, n].
func mergeBatches(batches [][]Row, n uint64) ([]Row, error) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	rows := make([]Row, 0, total)
	for _, b := range batches {
		rows = append(rows, b...)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].N < rows[j].N })

	if uint64(len(rows)) != n {
		return nil, fmt.Errorf("batch produced %d rows, want %d", len(rows), n)
	}
	for i, r := range rows {
		if r.N != uint64(i)+1 {
			return nil, fmt.Errorf("row %d has n=%d, want %d", i, r.N, i+1)
		}
	}
	return rows, nil
}
