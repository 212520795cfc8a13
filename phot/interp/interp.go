package interp

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by interpolation functions.
var (
	// ErrOutOfDomain indicates a query outside the sample domain without
	// zero-fill permission.
	ErrOutOfDomain = errors.New("interp: query outside sample domain")
	// ErrMalformedSamples indicates invalid input samples.
	ErrMalformedSamples = errors.New("interp: malformed samples")
	// ErrUnknownMethod indicates an unsupported interpolation method.
	ErrUnknownMethod = errors.New("interp: unknown method")
)

// Method identifies an interpolation algorithm.
type Method int

const (
	// MethodLinear is piecewise-linear interpolation.
	MethodLinear Method = iota
	// MethodSpline is a natural cubic spline.
	MethodSpline
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodSpline:
		return "spline"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

type config struct {
	zeroFill bool
}

// Option configures an Interpolator.
type Option func(*config)

// WithZeroFill makes out-of-domain queries evaluate to zero instead of
// failing with ErrOutOfDomain.
func WithZeroFill() Option {
	return func(cfg *config) {
		cfg.zeroFill = true
	}
}

// Interpolator evaluates a sampled curve at arbitrary abscissas.
// It is immutable after construction and safe for concurrent use.
type Interpolator struct {
	xs       []float64
	ys       []float64
	y2       []float64 // spline second derivatives, nil for linear
	method   Method
	zeroFill bool
}

// New builds an interpolator over the given samples. The abscissas must be
// strictly increasing; len(xs) must equal len(ys); at least 2 points are
// required (3 for splines). The input slices are copied.
func New(xs, ys []float64, method Method, opts ...Option) (*Interpolator, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: length mismatch %d vs %d", ErrMalformedSamples, len(xs), len(ys))
	}

	minPoints := 2
	if method == MethodSpline {
		minPoints = 3
	}

	if len(xs) < minPoints {
		return nil, fmt.Errorf("%w: need at least %d points, have %d", ErrMalformedSamples, minPoints, len(xs))
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: abscissas not strictly increasing at index %d", ErrMalformedSamples, i)
		}
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ip := &Interpolator{
		xs:       append([]float64(nil), xs...),
		ys:       append([]float64(nil), ys...),
		method:   method,
		zeroFill: cfg.zeroFill,
	}

	switch method {
	case MethodLinear:
	case MethodSpline:
		ip.y2 = naturalSplineSecondDerivs(ip.xs, ip.ys)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}

	return ip, nil
}

// Domain returns the inclusive abscissa range covered by the samples.
func (ip *Interpolator) Domain() (lo, hi float64) {
	return ip.xs[0], ip.xs[len(ip.xs)-1]
}

// At evaluates the curve at x.
func (ip *Interpolator) At(x float64) (float64, error) {
	if x < ip.xs[0] || x > ip.xs[len(ip.xs)-1] {
		if ip.zeroFill {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfDomain, x, ip.xs[0], ip.xs[len(ip.xs)-1])
	}

	i := ip.segment(x)

	if ip.method == MethodSpline {
		return splineEval(ip.xs, ip.ys, ip.y2, i, x), nil
	}

	x0, x1 := ip.xs[i], ip.xs[i+1]
	y0, y1 := ip.ys[i], ip.ys[i+1]
	t := (x - x0) / (x1 - x0)

	return y0 + t*(y1-y0), nil
}

// Evaluate evaluates the curve at each query point. Queries need not be
// sorted. On error the partial output is discarded.
func (ip *Interpolator) Evaluate(queries []float64) ([]float64, error) {
	out := make([]float64, len(queries))

	for i, q := range queries {
		v, err := ip.At(q)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

// segment returns the index i such that xs[i] <= x <= xs[i+1].
// The caller guarantees x lies within the domain.
func (ip *Interpolator) segment(x float64) int {
	i := sort.SearchFloat64s(ip.xs, x)
	if i > 0 {
		i--
	}

	if i > len(ip.xs)-2 {
		i = len(ip.xs) - 2
	}

	return i
}

// Evaluate is a one-shot convenience over New + Interpolator.Evaluate.
func Evaluate(xs, ys, queries []float64, method Method, opts ...Option) ([]float64, error) {
	ip, err := New(xs, ys, method, opts...)
	if err != nil {
		return nil, err
	}

	return ip.Evaluate(queries)
}

// naturalSplineSecondDerivs solves the tridiagonal system for the second
// derivatives of a natural cubic spline (zero curvature at both ends).
func naturalSplineSecondDerivs(xs, ys []float64) []float64 {
	n := len(xs)
	y2 := make([]float64, n)
	u := make([]float64, n-1)

	for i := 1; i < n-1; i++ {
		sig := (xs[i] - xs[i-1]) / (xs[i+1] - xs[i-1])
		p := sig*y2[i-1] + 2

		y2[i] = (sig - 1) / p

		du := (ys[i+1]-ys[i])/(xs[i+1]-xs[i]) - (ys[i]-ys[i-1])/(xs[i]-xs[i-1])
		u[i] = (6*du/(xs[i+1]-xs[i-1]) - sig*u[i-1]) / p
	}

	y2[n-1] = 0
	for i := n - 2; i >= 0; i-- {
		y2[i] = y2[i]*y2[i+1] + u[i]
	}

	return y2
}

// splineEval evaluates the cubic spline on segment i at x.
func splineEval(xs, ys, y2 []float64, i int, x float64) float64 {
	h := xs[i+1] - xs[i]
	a := (xs[i+1] - x) / h
	b := (x - xs[i]) / h

	return a*ys[i] + b*ys[i+1] + ((a*a*a-a)*y2[i]+(b*b*b-b)*y2[i+1])*h*h/6
}
