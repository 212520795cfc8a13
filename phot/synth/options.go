package synth

import "github.com/cwbudde/algo-synphot/phot/interp"

// Convention selects the flux-weighting convention of the band integrals.
type Convention int

const (
	// ConventionPhoton weights the integrand by wavelength, matching
	// photon-counting detectors. This is the default.
	ConventionPhoton Convention = iota
	// ConventionEnergy integrates flux density directly (energy-measuring
	// detectors, bolometers).
	ConventionEnergy
)

// Output selects the unit of the reported measurement.
type Output int

const (
	// OutputFluxDensity reports the band-averaged flux density.
	OutputFluxDensity Output = iota
	// OutputMagnitude additionally converts against the filter zero point.
	OutputMagnitude
)

const (
	defaultTolerance  = 1e-6
	defaultNodeBudget = 100000
)

type config struct {
	tolerance  float64
	nodeBudget int
	method     interp.Method
	convention Convention
	output     Output
}

// Option configures a photometry computation.
type Option func(*config)

// WithTolerance sets the relative integration tolerance (default 1e-6).
func WithTolerance(tol float64) Option {
	return func(cfg *config) {
		if tol > 0 {
			cfg.tolerance = tol
		}
	}
}

// WithNodeBudget bounds integrand evaluations per integral (default 100000).
func WithNodeBudget(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.nodeBudget = n
		}
	}
}

// WithInterpolation selects the interpolation method used to align the
// spectrum and filter grids (default interp.MethodLinear).
func WithInterpolation(m interp.Method) Option {
	return func(cfg *config) {
		cfg.method = m
	}
}

// WithConvention selects the flux-weighting convention (default photon).
func WithConvention(c Convention) Option {
	return func(cfg *config) {
		cfg.convention = c
	}
}

// WithOutput selects the output unit (default flux density).
func WithOutput(o Output) Option {
	return func(cfg *config) {
		cfg.output = o
	}
}

func applyOptions(opts []Option) config {
	cfg := config{
		tolerance:  defaultTolerance,
		nodeBudget: defaultNodeBudget,
		method:     interp.MethodLinear,
		convention: ConventionPhoton,
		output:     OutputFluxDensity,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
