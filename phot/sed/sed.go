package sed

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synphot/phot/interp"
)

// Errors returned by spectrum construction and operations.
var (
	// ErrMalformedSpectrum indicates invalid spectrum samples.
	ErrMalformedSpectrum = errors.New("sed: malformed spectrum")
	// ErrInvalidKernel indicates an invalid smoothing kernel width.
	ErrInvalidKernel = errors.New("sed: kernel width must be positive")
)

// Spectrum is an immutable spectral energy distribution: flux density
// tabulated over strictly increasing wavelengths.
type Spectrum struct {
	wavelengths []float64
	flux        []float64
}

// New validates and builds a spectrum. Wavelengths must be strictly
// increasing, len(wavelengths) == len(flux), at least 2 samples, and all
// values finite. The input slices are copied; the caller's data is never
// mutated.
func New(wavelengths, flux []float64) (*Spectrum, error) {
	if len(wavelengths) != len(flux) {
		return nil, fmt.Errorf("%w: length mismatch %d vs %d",
			ErrMalformedSpectrum, len(wavelengths), len(flux))
	}

	if len(wavelengths) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, have %d",
			ErrMalformedSpectrum, len(wavelengths))
	}

	for i := range wavelengths {
		if math.IsNaN(wavelengths[i]) || math.IsInf(wavelengths[i], 0) ||
			math.IsNaN(flux[i]) || math.IsInf(flux[i], 0) {
			return nil, fmt.Errorf("%w: non-finite sample at index %d", ErrMalformedSpectrum, i)
		}

		if i > 0 && wavelengths[i] <= wavelengths[i-1] {
			return nil, fmt.Errorf("%w: wavelengths not strictly increasing at index %d",
				ErrMalformedSpectrum, i)
		}
	}

	return &Spectrum{
		wavelengths: append([]float64(nil), wavelengths...),
		flux:        append([]float64(nil), flux...),
	}, nil
}

// Len returns the number of samples.
func (s *Spectrum) Len() int { return len(s.wavelengths) }

// Domain returns the covered wavelength range.
func (s *Spectrum) Domain() (lo, hi float64) {
	return s.wavelengths[0], s.wavelengths[len(s.wavelengths)-1]
}

// Wavelengths returns a copy of the sample wavelengths.
func (s *Spectrum) Wavelengths() []float64 {
	return append([]float64(nil), s.wavelengths...)
}

// Flux returns a copy of the flux density samples.
func (s *Spectrum) Flux() []float64 {
	return append([]float64(nil), s.flux...)
}

// Interpolator returns a strict-domain interpolator over the spectrum.
func (s *Spectrum) Interpolator(method interp.Method) (*interp.Interpolator, error) {
	return interp.New(s.wavelengths, s.flux, method)
}

// Resample evaluates the spectrum on a new wavelength grid. Grid points
// outside the spectrum domain fail with interp.ErrOutOfDomain.
func (s *Spectrum) Resample(grid []float64, method interp.Method) (*Spectrum, error) {
	ip, err := s.Interpolator(method)
	if err != nil {
		return nil, err
	}

	flux, err := ip.Evaluate(grid)
	if err != nil {
		return nil, err
	}

	return New(grid, flux)
}

// WeightedFlux returns the elementwise product of the flux samples with a
// weight table of the same length, e.g. a transmission curve evaluated on
// the spectrum's grid.
func (s *Spectrum) WeightedFlux(weights []float64) ([]float64, error) {
	if len(weights) != len(s.flux) {
		return nil, fmt.Errorf("%w: weight table length %d, want %d",
			ErrMalformedSpectrum, len(weights), len(s.flux))
	}

	out := make([]float64, len(s.flux))
	vecmath.MulBlock(out, s.flux, weights)

	return out, nil
}
