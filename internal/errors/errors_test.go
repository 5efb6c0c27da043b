// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 0, "-k"),
			expected: "invalid value 0 for flag -k",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cause       error
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "Error returns cause message",
			cause:       errors.New("mask overflow"),
			expectedMsg: "mask overflow",
		},
		{
			name:        "errors.Is works with wrapped error",
			cause:       context.Canceled,
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Cause: tt.cause}

			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "batch", Limit: 30 * time.Second}
	if got, want := err.Error(), `operation "batch" timed out after 30s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "n must be positive",
			err:      ValidationError{Field: "n", Message: "must be positive"},
			expected: `validation error for "n": must be positive`,
		},
		{
			name:     "shards must be positive",
			err:      ValidationError{Field: "shards", Message: "must be greater than zero"},
			expected: `validation error for "shards": must be greater than zero`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			var validationErr ValidationError
			if !errors.As(WrapError(err, "count"), &validationErr) {
				t.Fatal("expected error to be ValidationError type")
			}
			if validationErr.Field != tt.err.Field {
				t.Errorf("expected Field %q, got %q", tt.err.Field, validationErr.Field)
			}
		})
	}
}

func TestShardError(t *testing.T) {
	t.Parallel()
	cause := errors.New("worker crashed")
	err := ShardError{Shard: 3, First: 31, Last: 40, Cause: cause}

	if got, want := err.Error(), "shard 3 [31, 40] failed: worker crashed"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through ShardError")
	}

	var shardErr ShardError
	if !errors.As(WrapError(err, "batch"), &shardErr) {
		t.Fatal("errors.As should find ShardError through WrapError")
	}
	if shardErr.Shard != 3 {
		t.Errorf("expected Shard 3, got %d", shardErr.Shard)
	}
}

func TestPersistError(t *testing.T) {
	t.Parallel()
	err := PersistError{Path: "data/ads_sizes_10.csv", Cause: fs.ErrPermission}

	if got, want := err.Error(), "table data/ads_sizes_10.csv: permission denied"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should find fs.ErrPermission through PersistError")
	}
}

func TestMismatchError(t *testing.T) {
	t.Parallel()
	err := MismatchError{Count: 2, First: 7}
	if got, want := err.Error(), "2 mismatch(es) against brute force, first at n=7"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to read table",
			expectedMsg: "failed to read table: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "batch timed out",
			expectedMsg: "batch timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("short write"),
			format:      "row %d of %s",
			args:        []any{7, "table"},
			expectedMsg: "row 7 of table: short write",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}
			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation", WrapError(ValidationError{Field: "n", Message: "must be positive"}, "count"), ExitErrorConfig},
		{"timeout", TimeoutError{Operation: "batch", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", WrapError(context.DeadlineExceeded, "shard 0"), ExitErrorTimeout},
		{"canceled", ShardError{Shard: 1, Cause: context.Canceled}, ExitErrorCanceled},
		{"shard", ShardError{Shard: 1, Cause: errors.New("boom")}, ExitErrorGeneric},
		{"persist", PersistError{Path: "x.csv", Cause: fs.ErrNotExist}, ExitErrorGeneric},
		{"mismatch", WrapError(MismatchError{Count: 2, First: 7}, "verify"), ExitErrorMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorMismatch": ExitErrorMismatch,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
