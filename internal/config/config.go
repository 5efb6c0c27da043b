// Package config defines the command-line configuration of sumset: flag
// parsing, SUMSET_ environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/sumset/internal/errors"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "SUMSET_"

// Defaults.
const (
	DefaultN        = 100
	DefaultShards   = 40
	DefaultAlgo     = "roaring"
	DefaultExec     = "pool"
	DefaultOutDir   = "data"
	DefaultCompress = "none"
	DefaultLogLevel = "info"
)

// Known values of the enumerated flags.
var (
	ExecModes    = []string{"pool", "inline"}
	Compressions = []string{"none", "gzip", "zstd", "lz4"}
	Shells       = []string{"bash", "zsh", "fish"}
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the last n of the table; rows are produced for 1..N.
	N uint64
	// Shards is the number of contiguous ranges [1, N] is split into.
	Shards int
	// Jobs bounds the number of shards computed concurrently.
	Jobs int
	// Algo names the counter used for the batch.
	Algo string
	// Exec selects the scheduling mode ("pool" or "inline").
	Exec string
	// OutDir receives ads_sizes_<N>.csv when OutputFile is empty.
	OutDir string
	// OutputFile overrides the full table path.
	OutputFile string
	// Compress selects the table codec ("none", "gzip", "zstd", "lz4").
	Compress string
	// Timeout bounds the whole run. Zero means no limit.
	Timeout time.Duration
	// Quiet suppresses progress and configuration output.
	Quiet bool
	// Verbose enables debug logging and per-n verify output.
	Verbose bool
	// Print writes the table to standard output.
	Print bool
	// Summary prints the styled doubling-constant summary.
	Summary bool
	// Verify compares the counter against brute force on [From, N].
	Verify bool
	// From is the first n checked by Verify.
	From uint64
	// VerifyTable re-checks a persisted table against brute force.
	VerifyTable string
	// MetricsAddr serves Prometheus metrics when non-empty.
	MetricsAddr string
	// LogLevel is the zerolog level name.
	LogLevel string
	// NoColor disables ANSI colors.
	NoColor bool
	// Completion prints a shell completion script and exits.
	Completion string
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Completion != "" {
		if !slices.Contains(Shells, c.Completion) {
			return apperrors.NewConfigError("unsupported shell %q for --completion (available: %s)", c.Completion, strings.Join(Shells, ", "))
		}
		return nil
	}
	if c.VerifyTable != "" {
		return nil
	}
	if c.N == 0 {
		return apperrors.NewConfigError("-n must be a positive integer")
	}
	if c.Shards <= 0 {
		return apperrors.NewConfigError("--shards must be greater than zero, got %d", c.Shards)
	}
	if c.Jobs <= 0 {
		return apperrors.NewConfigError("--jobs must be greater than zero, got %d", c.Jobs)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("--timeout must not be negative, got %s", c.Timeout)
	}
	if !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if !slices.Contains(ExecModes, c.Exec) {
		return apperrors.NewConfigError("unknown execution mode %q (available: %s)", c.Exec, strings.Join(ExecModes, ", "))
	}
	if !slices.Contains(Compressions, c.Compress) {
		return apperrors.NewConfigError("unknown compression %q (available: %s)", c.Compress, strings.Join(Compressions, ", "))
	}
	if c.Verify {
		if c.From == 0 {
			return apperrors.NewConfigError("--from must be a positive integer")
		}
		if c.From > c.N {
			return apperrors.NewConfigError("--from (%d) must not exceed -n (%d)", c.From, c.N)
		}
	}
	return nil
}

// ParseConfig parses command-line arguments, applies SUMSET_ environment
// overrides to flags not given on the command line, and validates the
// result.
//
// Parameters:
//   - programName: The program name shown in usage output.
//   - args: Command-line arguments without the program name.
//   - errorWriter: Receives usage, flag and validation errors. Each error is
//     written here once; callers do not print it again.
//   - availableAlgos: Counter names accepted by --algo.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", DefaultN, "Largest n of the table (rows for 1..n).")
	fs.IntVar(&config.Shards, "shards", DefaultShards, "Number of contiguous shards [1, n] is split into.")
	fs.IntVar(&config.Shards, "k", DefaultShards, "Shorthand for --shards.")
	fs.IntVar(&config.Jobs, "jobs", runtime.NumCPU(), "Maximum number of shards computed concurrently.")
	fs.IntVar(&config.Jobs, "j", runtime.NumCPU(), "Shorthand for --jobs.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, fmt.Sprintf("Counter backend (%s).", strings.Join(availableAlgos, ", ")))
	fs.StringVar(&config.Exec, "exec", DefaultExec, "Execution mode (pool, inline).")
	fs.StringVar(&config.OutDir, "out-dir", DefaultOutDir, "Directory receiving ads_sizes_<n>.csv.")
	fs.StringVar(&config.OutputFile, "output", "", "Full table path (overrides --out-dir).")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.Compress, "compress", DefaultCompress, "Table compression (none, gzip, zstd, lz4).")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Maximum run time (e.g. 10m). 0 disables the limit.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress progress and configuration output.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Debug logging and per-n verification lines.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Print, "print", false, "Write the table to standard output.")
	fs.BoolVar(&config.Summary, "summary", false, "Print a summary of doubling constants.")
	fs.BoolVar(&config.Verify, "verify", false, "Compare the counter against brute force on [from, n] instead of writing a table.")
	fs.Uint64Var(&config.From, "from", 1, "First n checked by --verify.")
	fs.StringVar(&config.VerifyTable, "verify-table", "", "Re-check a persisted table against brute force.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)
	config.Algo = strings.ToLower(config.Algo)
	config.Exec = strings.ToLower(config.Exec)
	config.Compress = strings.ToLower(config.Compress)

	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}
