package app

import (
	"context"
	"io"

	"github.com/agbru/sumset/internal/cli"
	"github.com/agbru/sumset/internal/dyadic"
	apperrors "github.com/agbru/sumset/internal/errors"
	"github.com/agbru/sumset/internal/logging"
	"github.com/agbru/sumset/internal/table"
	"github.com/agbru/sumset/internal/verify"
)

// runVerify compares the configured counter with brute force on [From, N].
func (a *Application) runVerify(ctx context.Context, out io.Writer) error {
	cfg := a.Config
	if cfg.N > dyadic.MaxBruteForceN {
		return apperrors.NewConfigError("--verify supports n up to %d, got %d", dyadic.MaxBruteForceN, cfg.N)
	}
	counter, err := a.Registry.Get(cfg.Algo)
	if err != nil {
		return err
	}

	a.Logger.Info("verifying against brute force",
		logging.String("counter", counter.Name()),
		logging.Uint64("from", cfg.From),
		logging.Uint64("to", cfg.N))

	report, err := verify.Range(ctx, counter, dyadic.BruteForce{}, cfg.From, cfg.N, func(r verify.Result) {
		cli.DisplayVerifyResult(out, r, cfg.Verbose)
	})
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		cli.DisplayVerifySummary(out, report)
	}
	return report.Err()
}

// runVerifyTable re-checks the rows of a persisted table with brute force.
func (a *Application) runVerifyTable(ctx context.Context, out io.Writer) error {
	cfg := a.Config
	rows, err := table.Read(cfg.VerifyTable)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if r.N > dyadic.MaxBruteForceN {
			return apperrors.NewConfigError("%s: row n=%d exceeds the brute-force limit %d", cfg.VerifyTable, r.N, dyadic.MaxBruteForceN)
		}
	}

	a.Logger.Info("verifying table", logging.String("path", cfg.VerifyTable), logging.Int("rows", len(rows)))
	report, err := verify.Rows(ctx, rows, dyadic.BruteForce{}, func(r verify.Result) {
		cli.DisplayVerifyResult(out, r, cfg.Verbose)
	})
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		cli.DisplayVerifySummary(out, report)
	}
	return report.Err()
}
