package dyadic

import (
	"context"
	"math/big"
)

// MaxBruteForceN bounds the literal enumeration; beyond it the pairwise sum
// set no longer fits comfortably in memory.
const MaxBruteForceN = 256

// BruteForce materializes A(n) as a set of integers and A(n)+A(n) by literal
// pairwise summation. It exists to cross-check the dyadic counters.
type BruteForce struct{}

var _ Counter = BruteForce{}

// Name implements Counter.
func (BruteForce) Name() string { return "Brute force" }

// Count implements Counter.
func (BruteForce) Count(ctx context.Context, n uint64) (Sizes, error) {
	if err := validateN(n, MaxBruteForceN); err != nil {
		return Sizes{}, err
	}

	seen := make(map[string]struct{})
	var elems []*big.Int
	for i := uint64(1); i <= n; i++ {
		base := new(big.Int).SetUint64(i)
		for j := uint64(1); j <= n; j++ {
			x := new(big.Int).Lsh(base, uint(j))
			key := string(x.Bytes())
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			elems = append(elems, x)
		}
	}

	sums := make(map[string]struct{})
	var s big.Int
	for p, x := range elems {
		if err := ctx.Err(); err != nil {
			return Sizes{}, err
		}
		for _, y := range elems[p:] {
			s.Add(x, y)
			sums[string(s.Bytes())] = struct{}{}
		}
	}
	return Sizes{N: n, A: uint64(len(elems)), AA: uint64(len(sums))}, nil
}
