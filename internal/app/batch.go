package app

import (
	"context"
	"io"
	"time"

	"github.com/agbru/sumset/internal/cli"
	"github.com/agbru/sumset/internal/logging"
	"github.com/agbru/sumset/internal/metrics"
	"github.com/agbru/sumset/internal/orchestration"
	"github.com/agbru/sumset/internal/sysmon"
	"github.com/agbru/sumset/internal/table"
)

// runBatch computes the table for 1..N, persists it and reports the result.
func (a *Application) runBatch(ctx context.Context, out io.Writer, collector *metrics.Collector) error {
	cfg := a.Config
	counter, err := a.Registry.Get(cfg.Algo)
	if err != nil {
		return err
	}
	mode, err := orchestration.ParseExecMode(cfg.Exec)
	if err != nil {
		return err
	}
	compression, err := table.ParseCompression(cfg.Compress)
	if err != nil {
		return err
	}

	// With --print the table owns stdout; everything else moves to stderr.
	infoOut := out
	if cfg.Print {
		infoOut = a.ErrWriter
	}

	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	if !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, counter.Name(), infoOut)
		reporter = cli.NewProgressReporter(infoOut)
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	load := sysmon.Sample(ctx)
	a.Logger.Debug("host load before batch",
		logging.Float64("cpu_percent", load.CPUPercent),
		logging.Float64("mem_percent", load.MemPercent),
		logging.Uint64("mem_total", load.MemTotal))
	start := time.Now()

	rows, err := orchestration.Run(ctx, counter, orchestration.Options{
		N:        cfg.N,
		Shards:   cfg.Shards,
		Jobs:     cfg.Jobs,
		Mode:     mode,
		Logger:   a.Logger,
		Recorder: collector,
	}, reporter, infoOut)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	after := mem.Snapshot()
	gcCycles, gcPause := after.GCSince(before)
	load = sysmon.Sample(ctx)
	a.Logger.Info("batch completed",
		logging.Uint64("n", cfg.N),
		logging.Int("rows", len(rows)),
		logging.Duration("elapsed", elapsed),
		logging.Uint64("heap_alloc", after.HeapAlloc),
		logging.Int("gc_cycles", int(gcCycles)),
		logging.Duration("gc_pause", time.Duration(gcPause)),
		logging.Float64("host_cpu_percent", load.CPUPercent),
		logging.Float64("host_mem_percent", load.MemPercent))

	path := cfg.OutputFile
	if path == "" {
		path = table.DefaultPath(cfg.OutDir, cfg.N)
	}
	written, err := table.Write(path, rows, compression)
	if err != nil {
		return err
	}
	a.Logger.Info("table written", logging.String("path", written), logging.String("compression", compression.String()))

	if cfg.Print {
		if err := cli.PrintTable(out, rows); err != nil {
			return err
		}
	}
	if !cfg.Quiet {
		cli.DisplayBatchResult(infoOut, written, rows, elapsed)
	}
	if cfg.Summary {
		cli.DisplaySummary(infoOut, rows)
	}
	return nil
}
