package dyadic

import (
	"context"
	"math/big"
	"math/bits"
)

// BigMaskCounter stores each exponent mask as a math/big integer where bit t
// set means u·2^t ∈ A(n)+A(n).
type BigMaskCounter struct{}

var _ Counter = BigMaskCounter{}

// Name implements Counter.
func (BigMaskCounter) Name() string { return "Dyadic (big.Int masks)" }

// Count implements Counter.
func (BigMaskCounter) Count(ctx context.Context, n uint64) (Sizes, error) {
	if err := validateN(n, MaxN); err != nil {
		return Sizes{}, err
	}
	b := ExponentBounds(n)
	masks := newMaskTable(func() *big.Int { return new(big.Int) })

	one := big.NewInt(1)
	var run big.Int
	err := sweep(ctx, b, func(u *big.Int, lo, hi uint64) {
		// run = (2^(hi-lo+1) - 1) << lo
		run.Lsh(one, uint(hi-lo+1))
		run.Sub(&run, one)
		run.Lsh(&run, uint(lo))
		m := masks.get(u)
		m.Or(m, &run)
	})
	if err != nil {
		return Sizes{}, err
	}
	return Sizes{N: n, A: b.Size(), AA: masks.sum(popcount)}, nil
}

func popcount(x *big.Int) uint64 {
	var c uint64
	for _, w := range x.Bits() {
		c += uint64(bits.OnesCount(uint(w)))
	}
	return c
}
