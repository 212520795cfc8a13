package interp_test

import (
	"fmt"

	"github.com/cwbudde/algo-synphot/phot/interp"
)

func ExampleInterpolator_At() {
	ip, _ := interp.New(
		[]float64{1, 2, 3},
		[]float64{10, 20, 40},
		interp.MethodLinear,
	)

	v, _ := ip.At(2.5)
	fmt.Printf("%.1f\n", v)
	// Output:
	// 30.0
}

func ExampleWithZeroFill() {
	ip, _ := interp.New(
		[]float64{1, 2, 3},
		[]float64{0.2, 0.9, 0.1},
		interp.MethodLinear,
		interp.WithZeroFill(),
	)

	v, _ := ip.At(10)
	fmt.Printf("%.1f\n", v)
	// Output:
	// 0.0
}
