// Package dyadic computes |A(n)| and |A(n)+A(n)| exactly for
//
//	A(n) = { i·2^j : 1 ≤ i ≤ n, 1 ≤ j ≤ n }
//
// without materializing either set. Every positive integer is written as
// u·2^t with u odd; elements of A(n) with odd part m occupy exactly the
// exponents [1, Emax[m]], and for a fixed pair of odd parts (a, b) and shift
// d the sums a·2^e + b·2^(e+d) share one odd part u and cover a contiguous
// run of exponents. Counting therefore reduces to OR-ing exponent runs into a
// per-u bit mask and summing popcounts.
//
// Two mask backends are provided: [BigMaskCounter] keeps each mask in a
// math/big integer, [RoaringCounter] keeps it in a roaring bitmap.
// [BruteForce] enumerates both sets literally and serves as a test oracle.
package dyadic
