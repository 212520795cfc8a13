package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-synphot/phot/core"
	"github.com/cwbudde/algo-synphot/phot/interp"
	"github.com/cwbudde/algo-synphot/phot/quad"
)

// Errors returned by curve construction and registry lookups.
var (
	// ErrMalformedFilter indicates an invalid transmission curve.
	ErrMalformedFilter = errors.New("filter: malformed transmission curve")
	// ErrUnknownFilter indicates a name absent from the registry.
	ErrUnknownFilter = errors.New("filter: unknown filter name")
	// ErrDuplicateFilter indicates a name already present in the registry.
	ErrDuplicateFilter = errors.New("filter: duplicate filter name")
)

// Transmission values may exceed [0, 1] by this much before the curve is
// rejected; smaller excursions are clamped (digitization noise in published
// response tables).
const transmissionSlack = 1e-6

// Meta carries calibration metadata supplied alongside a transmission table.
type Meta struct {
	// PivotWavelength is the filter's reference band center. When zero it
	// is computed from the curve itself.
	PivotWavelength float64
	// ZeroPoint is the reference flux density mapping to magnitude 0.
	ZeroPoint float64
	// ZeroPointUnit names the unit of ZeroPoint, e.g. "Jy" or "W/m^2/um".
	ZeroPointUnit string
}

// Curve is an immutable instrument transmission curve.
type Curve struct {
	name          string
	wavelengths   []float64
	transmission  []float64
	pivot         float64
	zeroPoint     float64
	zeroPointUnit string
	supportLo     float64
	supportHi     float64
}

// NewCurve validates and builds a transmission curve. Wavelengths must be
// positive and strictly increasing, transmission within [0, 1] (up to a
// small clamped slack), with at least two samples and some nonzero
// transmission. The input slices are copied.
func NewCurve(name string, wavelengths, transmission []float64, meta Meta) (*Curve, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrMalformedFilter)
	}

	if len(wavelengths) != len(transmission) {
		return nil, fmt.Errorf("%w: %s: length mismatch %d vs %d",
			ErrMalformedFilter, name, len(wavelengths), len(transmission))
	}

	if len(wavelengths) < 2 {
		return nil, fmt.Errorf("%w: %s: need at least 2 samples, have %d",
			ErrMalformedFilter, name, len(wavelengths))
	}

	if wavelengths[0] <= 0 {
		return nil, fmt.Errorf("%w: %s: wavelengths must be positive", ErrMalformedFilter, name)
	}

	for i := 1; i < len(wavelengths); i++ {
		if wavelengths[i] <= wavelengths[i-1] {
			return nil, fmt.Errorf("%w: %s: wavelengths not strictly increasing at index %d",
				ErrMalformedFilter, name, i)
		}
	}

	tr := make([]float64, len(transmission))
	anyPositive := false

	for i, v := range transmission {
		if math.IsNaN(v) || v < -transmissionSlack || v > 1+transmissionSlack {
			return nil, fmt.Errorf("%w: %s: transmission %g at index %d outside [0, 1]",
				ErrMalformedFilter, name, v, i)
		}

		tr[i] = core.Clamp(v, 0, 1)
		if tr[i] > 0 {
			anyPositive = true
		}
	}

	if !anyPositive {
		return nil, fmt.Errorf("%w: %s: transmission is zero everywhere", ErrMalformedFilter, name)
	}

	c := &Curve{
		name:          name,
		wavelengths:   append([]float64(nil), wavelengths...),
		transmission:  tr,
		zeroPoint:     meta.ZeroPoint,
		zeroPointUnit: meta.ZeroPointUnit,
	}

	c.supportLo, c.supportHi = findSupport(c.wavelengths, c.transmission)

	c.pivot = meta.PivotWavelength
	if c.pivot <= 0 {
		pivot, err := computePivot(c)
		if err != nil {
			return nil, err
		}

		c.pivot = pivot
	}

	return c, nil
}

// Name returns the filter identifier.
func (c *Curve) Name() string { return c.name }

// PivotWavelength returns the filter's reference band center.
func (c *Curve) PivotWavelength() float64 { return c.pivot }

// ZeroPoint returns the reference zero-point flux density.
func (c *Curve) ZeroPoint() float64 { return c.zeroPoint }

// ZeroPointUnit returns the unit name of the zero point.
func (c *Curve) ZeroPointUnit() string { return c.zeroPointUnit }

// Domain returns the tabulated wavelength range.
func (c *Curve) Domain() (lo, hi float64) {
	return c.wavelengths[0], c.wavelengths[len(c.wavelengths)-1]
}

// Support returns the span between the first and last nonzero transmission
// samples, the filter's nominal support.
func (c *Curve) Support() (lo, hi float64) {
	return c.supportLo, c.supportHi
}

// Wavelengths returns a copy of the tabulated wavelengths.
func (c *Curve) Wavelengths() []float64 {
	return append([]float64(nil), c.wavelengths...)
}

// Transmission returns a copy of the tabulated transmission values.
func (c *Curve) Transmission() []float64 {
	return append([]float64(nil), c.transmission...)
}

// Interpolator returns a zero-fill interpolator over the transmission
// curve, representing the declared zero tail outside the tabulated domain.
func (c *Curve) Interpolator(method interp.Method) (*interp.Interpolator, error) {
	return interp.New(c.wavelengths, c.transmission, method, interp.WithZeroFill())
}

// EffectiveWidth returns the equivalent top-hat width of the filter,
// integral of T over the domain divided by the peak transmission.
func (c *Curve) EffectiveWidth() float64 {
	peak := 0.0
	for _, v := range c.transmission {
		if v > peak {
			peak = v
		}
	}

	area := trapezoid(c.wavelengths, c.transmission)

	return area / peak
}

func findSupport(wl, tr []float64) (lo, hi float64) {
	first, last := -1, -1

	for i, v := range tr {
		if v > 0 {
			if first < 0 {
				first = i
			}

			last = i
		}
	}

	return wl[first], wl[last]
}

// computePivot evaluates the pivot wavelength from the curve itself:
// sqrt(integral(T*lambda) / integral(T/lambda)).
func computePivot(c *Curve) (float64, error) {
	ip, err := c.Interpolator(interp.MethodLinear)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrMalformedFilter, c.name, err)
	}

	lo, hi := c.Domain()

	num, err := quad.Integrate(func(x float64) float64 {
		t, _ := ip.At(x)
		return t * x
	}, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: pivot integral: %v", ErrMalformedFilter, c.name, err)
	}

	den, err := quad.Integrate(func(x float64) float64 {
		t, _ := ip.At(x)
		return t / x
	}, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: pivot integral: %v", ErrMalformedFilter, c.name, err)
	}

	if den.Value <= 0 {
		return 0, fmt.Errorf("%w: %s: degenerate pivot normalization", ErrMalformedFilter, c.name)
	}

	return math.Sqrt(num.Value / den.Value), nil
}

func trapezoid(xs, ys []float64) float64 {
	sum := 0.0
	for i := 1; i < len(xs); i++ {
		sum += 0.5 * (ys[i] + ys[i-1]) * (xs[i] - xs[i-1])
	}

	return sum
}
