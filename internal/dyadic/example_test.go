package dyadic

import (
	"context"
	"fmt"
)

// ExampleCount shows the two smallest rows of the table.
func ExampleCount() {
	for n := uint64(1); n <= 2; n++ {
		s, err := Count(n)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("%d, %d, %d\n", s.N, s.A, s.AA)
	}
	// Output:
	// 1, 1, 1
	// 2, 3, 6
}

// ExampleNewDefaultRegistry demonstrates selecting a mask backend by name.
func ExampleNewDefaultRegistry() {
	registry := NewDefaultRegistry()
	fmt.Println(registry.List())

	counter := registry.MustGet("bigmask")
	s, err := counter.Count(context.Background(), 10)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(counter.Name(), s.A, s.AA)
	// Output:
	// [bigmask roaring]
	// Dyadic (big.Int masks) 55 899
}

// ExampleExponentBounds prints Emax for every odd part of A(6).
func ExampleExponentBounds() {
	b := ExponentBounds(6)
	for i, e := range b.Emax {
		fmt.Printf("m=%d Emax=%d\n", b.Odd(i), e)
	}
	fmt.Println("|A| =", b.Size())
	// Output:
	// m=1 Emax=8
	// m=3 Emax=7
	// m=5 Emax=6
	// |A| = 21
}
