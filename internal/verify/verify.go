// Package verify cross-checks dyadic counters against the brute-force
// oracle, either by recomputing a range of n or by re-reading a persisted
// table.
package verify

import (
	"context"
	"fmt"

	"github.com/agbru/sumset/internal/dyadic"
	apperrors "github.com/agbru/sumset/internal/errors"
)

// Outcome classifies one comparison.
type Outcome int

const (
	// Match means both |A| and |A+A| agree.
	Match Outcome = iota
	// AMismatch means |A| differs. It takes precedence over AAMismatch.
	AMismatch
	// AAMismatch means |A| agrees but |A+A| differs.
	AAMismatch
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case AMismatch:
		return "|A| mismatch"
	case AAMismatch:
		return "|A+A| mismatch"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Compare classifies got against the oracle's want.
func Compare(got, want dyadic.Sizes) Outcome {
	switch {
	case got.A != want.A:
		return AMismatch
	case got.AA != want.AA:
		return AAMismatch
	default:
		return Match
	}
}

// Result is the outcome for a single n.
type Result struct {
	N       uint64
	Outcome Outcome
	Got     dyadic.Sizes
	Want    dyadic.Sizes
}

// Report collects the results of a verification run in order of n.
type Report struct {
	Results []Result
}

// Mismatches returns the number of results that are not Match.
func (r Report) Mismatches() int {
	count := 0
	for _, res := range r.Results {
		if res.Outcome != Match {
			count++
		}
	}
	return count
}

// Err returns a MismatchError when any result is not Match.
func (r Report) Err() error {
	count := r.Mismatches()
	if count == 0 {
		return nil
	}
	for _, res := range r.Results {
		if res.Outcome != Match {
			return apperrors.MismatchError{Count: count, First: res.N}
		}
	}
	return nil
}

// Range compares counter against oracle for every n in [from, to]. onResult,
// if non-nil, is called after each n so callers can stream a report.
// Counting errors abort the run as a CalculationError; mismatches do not.
func Range(ctx context.Context, counter, oracle dyadic.Counter, from, to uint64, onResult func(Result)) (Report, error) {
	if from == 0 {
		return Report{}, apperrors.ValidationError{Field: "from", Message: "must be a positive integer"}
	}
	if from > to {
		return Report{}, apperrors.ValidationError{Field: "from", Message: fmt.Sprintf("must not exceed n (%d)", to)}
	}

	report := Report{Results: make([]Result, 0, to-from+1)}
	for n := from; n <= to; n++ {
		got, err := counter.Count(ctx, n)
		if err != nil {
			return report, apperrors.CalculationError{Cause: apperrors.WrapError(err, "%s at n=%d", counter.Name(), n)}
		}
		if err := check(ctx, oracle, got, &report, onResult); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Rows compares previously computed rows against oracle.
func Rows(ctx context.Context, rows []dyadic.Sizes, oracle dyadic.Counter, onResult func(Result)) (Report, error) {
	report := Report{Results: make([]Result, 0, len(rows))}
	for _, got := range rows {
		if err := check(ctx, oracle, got, &report, onResult); err != nil {
			return report, err
		}
	}
	return report, nil
}

func check(ctx context.Context, oracle dyadic.Counter, got dyadic.Sizes, report *Report, onResult func(Result)) error {
	want, err := oracle.Count(ctx, got.N)
	if err != nil {
		return apperrors.WrapError(err, "%s at n=%d", oracle.Name(), got.N)
	}
	res := Result{N: got.N, Outcome: Compare(got, want), Got: got, Want: want}
	report.Results = append(report.Results, res)
	if onResult != nil {
		onResult(res)
	}
	return nil
}
