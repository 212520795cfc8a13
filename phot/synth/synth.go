package synth

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synphot/phot/core"
	"github.com/cwbudde/algo-synphot/phot/filter"
	"github.com/cwbudde/algo-synphot/phot/interp"
	"github.com/cwbudde/algo-synphot/phot/quad"
	"github.com/cwbudde/algo-synphot/phot/sed"
)

// Errors returned by photometry computations.
var (
	// ErrNilSpectrum indicates a nil input spectrum.
	ErrNilSpectrum = errors.New("synth: spectrum must not be nil")
	// ErrNilRegistry indicates a nil filter registry.
	ErrNilRegistry = errors.New("synth: registry must not be nil")
	// ErrNilCurve indicates a nil filter curve.
	ErrNilCurve = errors.New("synth: curve must not be nil")
	// ErrDegenerateFilter indicates a normalization integral within a
	// relative epsilon of zero (negligible effective filter coverage).
	ErrDegenerateFilter = errors.New("synth: filter normalization integral is negligible")
)

// A normalization integral below this mean transmission over the overlap is
// treated as degenerate.
const degenerateMeanTransmission = 1e-12

// Result is one filter's photometry measurement.
type Result struct {
	// Filter is the transmission curve name.
	Filter string
	// Flux is the band-averaged flux density in the spectrum's flux unit.
	Flux float64
	// FluxError is the propagated integration error estimate on Flux.
	FluxError float64
	// Magnitude is the zero-point-referenced magnitude. It is NaN unless
	// OutputMagnitude was requested and the conversion succeeded.
	Magnitude float64
	// OverlapFraction is the fraction of the filter's nominal support
	// covered by the spectrum. Low values flag questionable measurements;
	// they are not errors.
	OverlapFraction float64
	// Converged is false when either band integral hit its node budget or
	// depth cutoff before reaching tolerance. Inspect it before trusting
	// Flux on numerically stiff inputs.
	Converged bool
	// Nodes is the total number of integrand evaluations spent.
	Nodes int
	// Err records this filter's failure, if any. A batch never aborts on
	// one filter; check Err per entry.
	Err error
}

// Compute measures the spectrum through each named filter from the
// registry. The returned map has one entry per requested name; per-filter
// failures (unknown name, degenerate filter, magnitude of non-positive
// flux) are recorded in the entry's Err and do not affect the other
// filters. The spectrum, curves, and registry are not mutated.
func Compute(spec *sed.Spectrum, names []string, reg *filter.Registry, opts ...Option) (map[string]Result, error) {
	if spec == nil {
		return nil, ErrNilSpectrum
	}

	if reg == nil {
		return nil, ErrNilRegistry
	}

	cfg := applyOptions(opts)
	results := make(map[string]Result, len(names))

	for _, name := range names {
		if _, ok := results[name]; ok {
			continue
		}

		curve, err := reg.Get(name)
		if err != nil {
			results[name] = Result{Filter: name, Magnitude: math.NaN(), Err: err}
			continue
		}

		results[name] = computeOne(spec, curve, cfg)
	}

	return results, nil
}

// ComputeOne measures the spectrum through a single curve. Failures are
// reported in Result.Err, matching the batch behavior.
func ComputeOne(spec *sed.Spectrum, curve *filter.Curve, opts ...Option) (Result, error) {
	if spec == nil {
		return Result{}, ErrNilSpectrum
	}

	if curve == nil {
		return Result{}, ErrNilCurve
	}

	return computeOne(spec, curve, applyOptions(opts)), nil
}

func computeOne(spec *sed.Spectrum, curve *filter.Curve, cfg config) Result {
	res := Result{Filter: curve.Name(), Magnitude: math.NaN()}

	specLo, specHi := spec.Domain()
	supLo, supHi := curve.Support()

	lo := math.Max(specLo, supLo)
	hi := math.Min(specHi, supHi)

	if lo >= hi {
		// A filter entirely outside the observed spectrum is a valid,
		// zero-flux outcome, not an error.
		res.Converged = true
		return res
	}

	res.OverlapFraction = (hi - lo) / (supHi - supLo)

	specIp, err := spec.Interpolator(cfg.method)
	if err != nil {
		res.Err = err
		return res
	}

	filtIp, err := curve.Interpolator(cfg.method)
	if err != nil {
		res.Err = err
		return res
	}

	// Transient integration grid: union of both sample sets over the
	// overlap plus segment midpoints, used for a cheap all-zero probe
	// before any refinement. With linear interpolation the product on each
	// segment is a quadratic, so vanishing at both endpoints and the
	// midpoint proves it vanishes on the whole segment.
	grid := withMidpoints(mergedGrid(spec.Wavelengths(), curve.Wavelengths(), lo, hi))

	specVals, err := specIp.Evaluate(grid)
	if err != nil {
		res.Err = err
		return res
	}

	filtVals, err := filtIp.Evaluate(grid)
	if err != nil {
		res.Err = err
		return res
	}

	product := make([]float64, len(grid))
	vecmath.MulBlock(product, specVals, filtVals)

	weight := func(x float64) float64 { return x }
	if cfg.convention == ConventionEnergy {
		weight = func(float64) float64 { return 1 }
	}

	denominator := func(x float64) float64 {
		t, _ := filtIp.At(x)

		return t * weight(x)
	}

	quadOpts := []quad.Option{
		quad.WithTolerance(cfg.tolerance),
		quad.WithNodeBudget(cfg.nodeBudget),
	}

	den, err := quad.Integrate(denominator, lo, hi, quadOpts...)
	if err != nil {
		res.Err = err
		return res
	}

	res.Converged = den.Converged
	res.Nodes = den.Nodes

	// Degeneracy guard: mean transmission over the overlap within epsilon
	// of zero means the ratio is dominated by noise.
	meanTransmission := den.Value / ((hi - lo) * weight(hi))
	if den.Value <= 0 || core.NearlyEqual(meanTransmission, 0, degenerateMeanTransmission) {
		res.Err = fmt.Errorf("%w: %s", ErrDegenerateFilter, curve.Name())
		return res
	}

	var num quad.Result

	// Skip the numerator integral when the probe proves it identically
	// zero. The proof only holds for piecewise-linear interpolation.
	if cfg.method != interp.MethodLinear || !allZero(product) {
		numerator := func(x float64) float64 {
			s, _ := specIp.At(x)
			t, _ := filtIp.At(x)

			return s * t * weight(x)
		}

		num, err = quad.Integrate(numerator, lo, hi, quadOpts...)
		if err != nil {
			res.Err = err
			return res
		}

		res.Converged = res.Converged && num.Converged
		res.Nodes += num.Nodes
	}

	res.Flux = num.Value / den.Value
	res.FluxError = num.ErrorEstimate/math.Abs(den.Value) +
		math.Abs(res.Flux)*den.ErrorEstimate/math.Abs(den.Value)

	if cfg.output == OutputMagnitude {
		mag, err := core.FluxToMagnitude(res.Flux, curve.ZeroPoint())
		if err != nil {
			res.Err = err
			return res
		}

		res.Magnitude = mag
	}

	return res
}

// mergedGrid collects the union of both wavelength sample sets restricted
// to [lo, hi], with the interval endpoints included.
func mergedGrid(a, b []float64, lo, hi float64) []float64 {
	grid := make([]float64, 0, len(a)+len(b)+2)
	grid = append(grid, lo)

	for _, x := range a {
		if x > lo && x < hi {
			grid = append(grid, x)
		}
	}

	for _, x := range b {
		if x > lo && x < hi {
			grid = append(grid, x)
		}
	}

	grid = append(grid, hi)
	sort.Float64s(grid)

	// Drop duplicates from coincident sample points.
	out := grid[:1]
	for _, x := range grid[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}

	return out
}

// withMidpoints interleaves each segment's midpoint into an ordered grid.
func withMidpoints(grid []float64) []float64 {
	out := make([]float64, 0, 2*len(grid)-1)

	for i, x := range grid {
		if i > 0 {
			out = append(out, 0.5*(grid[i-1]+x))
		}

		out = append(out, x)
	}

	return out
}

func allZero(xs []float64) bool {
	for _, v := range xs {
		if v != 0 {
			return false
		}
	}

	return true
}
