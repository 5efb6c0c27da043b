package orchestration

import (
	"math/bits"

	apperrors "github.com/agbru/sumset/internal/errors"
)

// Shard is a contiguous, inclusive range [First, Last] of n values.
type Shard struct {
	Index int
	First uint64
	Last  uint64
}

// Len returns the number of n values in the shard.
func (s Shard) Len() int {
	return int(s.Last - s.First + 1)
}

// maxPrealloc bounds the initial shard slice capacity.
const maxPrealloc = 1 << 16

// Partition splits [1, n] into at most k contiguous shards. Shard i covers
// [i·n/k + 1, (i+1)·n/k]; shards that come out empty (k > n) are dropped, so
// the result always covers [1, n] exactly once and in order. Indices of the
// returned shards are renumbered from zero.
//
// At most n shards can be non-empty, so k is capped at n. With k ≥ n every
// shard holds a single n either way, which keeps the result identical while
// bounding the loop.
func Partition(n uint64, k int) ([]Shard, error) {
	if n == 0 {
		return nil, apperrors.ValidationError{Field: "n", Message: "must be a positive integer"}
	}
	if k <= 0 {
		return nil, apperrors.ValidationError{Field: "shards", Message: "must be greater than zero"}
	}
	kk := min(uint64(k), n)
	shards := make([]Shard, 0, min(kk, maxPrealloc))
	for i := uint64(0); i < kk; i++ {
		first := mulDiv(i, n, kk) + 1
		last := mulDiv(i+1, n, kk)
		if first > last {
			continue
		}
		shards = append(shards, Shard{Index: len(shards), First: first, Last: last})
	}
	return shards, nil
}

// mulDiv returns a·b/c using a 128-bit product. Callers guarantee a ≤ c, so
// the quotient fits in 64 bits.
func mulDiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, c)
	return q
}
