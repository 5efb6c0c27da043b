package dyadic

import (
	"context"
	"math/big"

	"github.com/RoaringBitmap/roaring/v2"
)

// RoaringCounter stores each exponent mask as a roaring bitmap. Runs are
// marked with AddRange, which run-length containers absorb without touching
// individual bits.
type RoaringCounter struct{}

var _ Counter = RoaringCounter{}

// Name implements Counter.
func (RoaringCounter) Name() string { return "Dyadic (roaring masks)" }

// Count implements Counter.
func (RoaringCounter) Count(ctx context.Context, n uint64) (Sizes, error) {
	if err := validateN(n, MaxN); err != nil {
		return Sizes{}, err
	}
	b := ExponentBounds(n)
	masks := newMaskTable(roaring.New)

	err := sweep(ctx, b, func(u *big.Int, lo, hi uint64) {
		masks.get(u).AddRange(lo, hi+1)
	})
	if err != nil {
		return Sizes{}, err
	}
	return Sizes{N: n, A: b.Size(), AA: masks.sum((*roaring.Bitmap).GetCardinality)}, nil
}
