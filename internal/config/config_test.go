package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/sumset/internal/errors"
)

var algos = []string{"bigmask", "roaring"}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("sumset", nil, io.Discard, algos)
	if err != nil {
		t.Fatal(err)
	}
	want := AppConfig{
		N:        DefaultN,
		Shards:   DefaultShards,
		Jobs:     runtime.NumCPU(),
		Algo:     DefaultAlgo,
		Exec:     DefaultExec,
		OutDir:   DefaultOutDir,
		Compress: DefaultCompress,
		From:     1,
		LogLevel: DefaultLogLevel,
	}
	if cfg != want {
		t.Errorf("defaults = %+v, want %+v", cfg, want)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"-n", "500", "-k", "8", "-j", "3", "--algo", "BIGMASK", "--exec", "inline",
		"-o", "out/t.csv", "--compress", "zstd", "--timeout", "90s", "-q", "--print",
		"--verify", "--from", "10", "--metrics-addr", ":2112", "--log-level", "debug",
	}
	cfg, err := ParseConfig("sumset", args, io.Discard, algos)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.N != 500 || cfg.Shards != 8 || cfg.Jobs != 3 {
		t.Errorf("numeric flags = %d/%d/%d", cfg.N, cfg.Shards, cfg.Jobs)
	}
	if cfg.Algo != "bigmask" || cfg.Exec != "inline" || cfg.Compress != "zstd" {
		t.Errorf("string flags = %q/%q/%q", cfg.Algo, cfg.Exec, cfg.Compress)
	}
	if cfg.OutputFile != "out/t.csv" || cfg.Timeout != 90*time.Second {
		t.Errorf("output/timeout = %q/%v", cfg.OutputFile, cfg.Timeout)
	}
	if !cfg.Quiet || !cfg.Print || !cfg.Verify || cfg.From != 10 {
		t.Errorf("bool flags not applied: %+v", cfg)
	}
	if cfg.MetricsAddr != ":2112" || cfg.LogLevel != "debug" {
		t.Errorf("metrics/log = %q/%q", cfg.MetricsAddr, cfg.LogLevel)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero n", []string{"-n", "0"}},
		{"zero shards", []string{"-k", "0"}},
		{"negative jobs", []string{"-j", "-1"}},
		{"unknown algo", []string{"--algo", "fft"}},
		{"unknown exec", []string{"--exec", "threads"}},
		{"unknown compression", []string{"--compress", "brotli"}},
		{"negative timeout", []string{"--timeout", "-1s"}},
		{"from after n", []string{"-n", "5", "--verify", "--from", "6"}},
		{"zero from", []string{"--verify", "--from", "0"}},
		{"unknown shell", []string{"--completion", "tcsh"}},
		{"unknown flag", []string{"--fft-threshold", "4"}},
		{"positional", []string{"10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			_, err := ParseConfig("sumset", tt.args, &stderr, algos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d", apperrors.ExitCodeFor(err))
			}
			// Reported exactly once, by flag or by validation.
			if got := strings.Count(stderr.String(), err.Error()); got != 1 {
				t.Errorf("error %q written %d times to stderr:\n%s", err, got, stderr.String())
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := ParseConfig("sumset", []string{"-h"}, &stderr, algos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("-shards")) {
		t.Errorf("usage should list flags, got %s", stderr.String())
	}
}

func TestParseConfig_VerifyTableSkipsBatchChecks(t *testing.T) {
	cfg, err := ParseConfig("sumset", []string{"--verify-table", "data/t.csv", "-k", "0"}, io.Discard, algos)
	if err != nil {
		t.Fatalf("--verify-table should not validate batch flags: %v", err)
	}
	if cfg.VerifyTable != "data/t.csv" {
		t.Errorf("VerifyTable = %q", cfg.VerifyTable)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SUMSET_N", "250")
	t.Setenv("SUMSET_SHARDS", "7")
	t.Setenv("SUMSET_JOBS", "not-a-number")
	t.Setenv("SUMSET_ALGO", "bigmask")
	t.Setenv("SUMSET_TIMEOUT", "2m")
	t.Setenv("SUMSET_QUIET", "yes")
	t.Setenv("SUMSET_COMPRESS", "gzip")
	t.Setenv("SUMSET_OUT_DIR", "tables")

	cfg, err := ParseConfig("sumset", []string{"-k", "3"}, io.Discard, algos)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.N != 250 {
		t.Errorf("N = %d, want 250 from env", cfg.N)
	}
	if cfg.Shards != 3 {
		t.Errorf("Shards = %d, flag should win over env", cfg.Shards)
	}
	if cfg.Jobs != runtime.NumCPU() {
		t.Errorf("Jobs = %d, invalid env value should be ignored", cfg.Jobs)
	}
	if cfg.Algo != "bigmask" || cfg.Timeout != 2*time.Minute || !cfg.Quiet {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Compress != "gzip" || cfg.OutDir != "tables" {
		t.Errorf("compress/out-dir = %q/%q", cfg.Compress, cfg.OutDir)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.in, tt.def, got)
		}
	}
}
