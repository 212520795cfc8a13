package synth_test

import (
	"fmt"

	"github.com/cwbudde/algo-synphot/phot/filter"
	"github.com/cwbudde/algo-synphot/phot/sed"
	"github.com/cwbudde/algo-synphot/phot/synth"
)

func ExampleCompute() {
	// A flat spectrum through a top-hat filter measures the constant.
	wl := make([]float64, 50)
	fl := make([]float64, 50)

	for i := range wl {
		wl[i] = 1 + 2*float64(i)/49
		fl[i] = 2.5
	}

	spec, _ := sed.New(wl, fl)

	reg := filter.NewRegistry()
	_, _ = reg.Load("band",
		[]float64{1.4, 1.5, 2.5, 2.6},
		[]float64{0, 1, 1, 0},
		filter.Meta{ZeroPoint: 2.5},
	)

	results, _ := synth.Compute(spec, []string{"band"}, reg)
	res := results["band"]

	fmt.Printf("flux=%.3f overlap=%.1f converged=%v\n",
		res.Flux, res.OverlapFraction, res.Converged)
	// Output:
	// flux=2.500 overlap=1.0 converged=true
}
