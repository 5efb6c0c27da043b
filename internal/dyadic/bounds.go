package dyadic

import "math/bits"

// Bounds holds the per-odd exponent bound map of A(n).
//
// Emax[i] belongs to the odd part m = 2i+1 and is the largest e with
// m·2^e ∈ A(n). Every exponent in [1, Emax[i]] is attained.
type Bounds struct {
	N    uint64
	Emax []uint64
}

// ExponentBounds builds the bound map for n. For odd m ≤ n the elements with
// odd part m are i·2^j with i = m·2^k, 0 ≤ k ≤ L(m) = ⌊log2(n/m)⌋ and
// 1 ≤ j ≤ n, so the exponent k+j sweeps [1, n+L(m)] with no gaps.
func ExponentBounds(n uint64) Bounds {
	emax := make([]uint64, (n+1)/2)
	for i := range emax {
		m := uint64(2*i + 1)
		emax[i] = n + uint64(bits.Len64(n/m)-1)
	}
	return Bounds{N: n, Emax: emax}
}

// Odd returns the odd part indexed by i.
func (b Bounds) Odd(i int) uint64 { return uint64(2*i + 1) }

// Size returns |A(n)|, the number of distinct (odd part, exponent) pairs.
func (b Bounds) Size() uint64 {
	var total uint64
	for _, e := range b.Emax {
		total += e
	}
	return total
}
