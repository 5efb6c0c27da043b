package dyadic

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"

	apperrors "github.com/agbru/sumset/internal/errors"
)

// MaxN is the largest n accepted by the dyadic counters. Exponent positions
// stay below 2n+64, which keeps them inside a 32-bit bitmap universe.
const MaxN = 1 << 24

// Sizes is one result row: n, |A(n)| and |A(n)+A(n)|.
type Sizes struct {
	N  uint64
	A  uint64
	AA uint64
}

// DoublingRatio returns |A+A| / |A|.
func (s Sizes) DoublingRatio() float64 {
	if s.A == 0 {
		return 0
	}
	return float64(s.AA) / float64(s.A)
}

// Counter computes Sizes for a single n. Implementations are pure: they
// own every intermediate structure for the duration of one call and are
// safe for concurrent use.
//
//go:generate mockgen -source=counter.go -destination=mocks/mock_counter.go -package=mocks
type Counter interface {
	// Name returns a short human-readable identifier.
	Name() string
	// Count returns (n, |A(n)|, |A(n)+A(n)|). n = 0 yields a ValidationError.
	Count(ctx context.Context, n uint64) (Sizes, error)
}

// Count computes Sizes for n with the default counter.
func Count(n uint64) (Sizes, error) {
	return RoaringCounter{}.Count(context.Background(), n)
}

func validateN(n, limit uint64) error {
	if n == 0 {
		return apperrors.ValidationError{Field: "n", Message: "must be a positive integer"}
	}
	if n > limit {
		return apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("must not exceed %d", limit)}
	}
	return nil
}

// runMarker receives one exponent run [lo, hi] for the odd part u.
// u is only valid for the duration of the call.
type runMarker func(u *big.Int, lo, hi uint64)

// sweep walks every ordered pair of odd parts (a, b) and every shift d with
// a valid first exponent, reducing K = a + b·2^d to u·2^tz and reporting the
// run [1+tz, E1max+tz]. The context is polled once per a.
func sweep(ctx context.Context, b Bounds, mark runMarker) error {
	var a, odd, k big.Int
	for i, ea := range b.Emax {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.SetUint64(b.Odd(i))
		for j, eb := range b.Emax {
			odd.SetUint64(b.Odd(j))
			// d < eb keeps eb-d ≥ 1, so at least e1 = 1 is always valid.
			for d := uint64(0); d < eb; d++ {
				e1max := min(ea, eb-d)
				k.Lsh(&odd, uint(d))
				k.Add(&k, &a)
				tz := k.TrailingZeroBits()
				k.Rsh(&k, tz)
				mark(&k, 1+uint64(tz), e1max+uint64(tz))
			}
		}
	}
	return nil
}

// maskTable maps odd parts to masks. Odd parts that fit in a machine word
// are keyed directly; wider ones by their big-endian bytes.
type maskTable[M any] struct {
	small   map[uint64]M
	large   map[string]M
	newMask func() M
}

func newMaskTable[M any](newMask func() M) *maskTable[M] {
	return &maskTable[M]{
		small:   make(map[uint64]M),
		large:   make(map[string]M),
		newMask: newMask,
	}
}

func (t *maskTable[M]) get(u *big.Int) M {
	if u.BitLen() <= 64 {
		key := u.Uint64()
		m, ok := t.small[key]
		if !ok {
			m = t.newMask()
			t.small[key] = m
		}
		return m
	}
	key := string(u.Bytes())
	m, ok := t.large[key]
	if !ok {
		m = t.newMask()
		t.large[key] = m
	}
	return m
}

// sum adds f(mask) over every mask. Addition is commutative, so map
// iteration order does not affect the result.
func (t *maskTable[M]) sum(f func(M) uint64) uint64 {
	var total uint64
	for _, m := range t.small {
		total += f(m)
	}
	for _, m := range t.large {
		total += f(m)
	}
	return total
}

// Registry maps counter names to implementations.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]Counter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]Counter)}
}

// NewDefaultRegistry returns a registry holding the production counters.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("roaring", RoaringCounter{})
	r.Register("bigmask", BigMaskCounter{})
	return r
}

// Register adds or replaces a counter.
func (r *Registry) Register(name string, c Counter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[name] = c
}

// Get returns the counter registered under name.
func (r *Registry) Get(name string) (Counter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.counters[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown algorithm %q (available: %v)", name, r.listLocked())
	}
	return c, nil
}

// MustGet is like Get but panics on unknown names.
func (r *Registry) MustGet(name string) Counter {
	c, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.counters))
	for name := range r.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
