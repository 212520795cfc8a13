package quad

import (
	"errors"
	"math"
)

// ErrNilIntegrand indicates a nil integrand function.
var ErrNilIntegrand = errors.New("quad: integrand must not be nil")

const (
	defaultTolerance  = 1e-6
	defaultNodeBudget = 100000
	defaultMaxDepth   = 48
	zeroProbePoints   = 9
	machineEpsilon    = 2.220446049250313e-16
)

// Result holds the outcome of an adaptive integration.
type Result struct {
	Value         float64 // best estimate of the integral
	ErrorEstimate float64 // accumulated local error estimates
	Nodes         int     // number of integrand evaluations
	Converged     bool    // false when a budget or depth cutoff stopped refinement
}

type config struct {
	tolerance  float64
	nodeBudget int
	maxDepth   int
}

// Option configures the integrator.
type Option func(*config)

// WithTolerance sets the relative error tolerance (default 1e-6).
func WithTolerance(tol float64) Option {
	return func(cfg *config) {
		if tol > 0 {
			cfg.tolerance = tol
		}
	}
}

// WithNodeBudget bounds the total number of integrand evaluations
// (default 100000). The budget guarantees termination on pathological
// integrands such as near-delta features.
func WithNodeBudget(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.nodeBudget = n
		}
	}
}

// WithMaxDepth bounds the bisection depth per subinterval (default 48).
func WithMaxDepth(d int) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.maxDepth = d
		}
	}
}

// interval is one pending work item on the refinement stack.
type interval struct {
	a, b       float64
	fa, fm, fb float64
	estimate   float64 // single-panel Simpson over [a, b]
	errBound   float64 // error charged when the interval is drained unrefined
	tolerance  float64 // this interval's share of the global tolerance
	depth      int
}

// Integrate computes the integral of f over [a, b] with adaptive Simpson
// refinement. A reversed domain (b < a) integrates the swapped interval and
// negates the result. A zero-width domain returns 0 with Converged=true.
func Integrate(f func(float64) float64, a, b float64, opts ...Option) (Result, error) {
	if f == nil {
		return Result{}, ErrNilIntegrand
	}

	cfg := config{
		tolerance:  defaultTolerance,
		nodeBudget: defaultNodeBudget,
		maxDepth:   defaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	sign := 1.0
	if b < a {
		a, b = b, a
		sign = -1
	}

	if a == b {
		return Result{Converged: true}, nil
	}

	res := integrate(f, a, b, cfg)
	res.Value *= sign

	return res, nil
}

func integrate(f func(float64) float64, a, b float64, cfg config) Result {
	nodes := 0
	eval := func(x float64) float64 {
		nodes++
		return f(x)
	}

	// Coarse probe: an identically-zero integrand short-circuits without
	// any subdivision.
	grid := make([]float64, zeroProbePoints)
	probe := make([]float64, zeroProbePoints)
	allZero := true

	for i := range probe {
		grid[i] = a + (b-a)*float64(i)/float64(zeroProbePoints-1)
		probe[i] = eval(grid[i])

		if probe[i] != 0 {
			allZero = false
		}
	}

	grid[zeroProbePoints-1] = b

	if allZero {
		return Result{Nodes: nodes, Converged: true}
	}

	// Seed the work stack with one panel per probe segment, reusing the
	// probe values. A single root panel would accept any integrand whose
	// structure aliases its three coarse nodes at depth zero.
	seeds := make([]interval, zeroProbePoints-1)
	coarse := 0.0

	for i := range seeds {
		lo, hi := grid[i], grid[i+1]
		fm := eval(0.5 * (lo + hi))

		seeds[i] = interval{
			a: lo, b: hi,
			fa: probe[i], fm: fm, fb: probe[i+1],
			estimate: simpson(lo, hi, probe[i], fm, probe[i+1]),
		}
		coarse += seeds[i].estimate
	}

	// Tolerance is relative to the coarse estimate's magnitude, with an
	// absolute floor for integrals near zero.
	globalTol := cfg.tolerance * math.Max(1, math.Abs(coarse))

	for i := range seeds {
		seeds[i].tolerance = globalTol / float64(len(seeds))
		seeds[i].errBound = math.Abs(seeds[i].estimate)
	}

	var (
		value     float64
		errorSum  float64
		converged = true
	)

	stack := make([]interval, 0, 64)
	stack = append(stack, seeds...)

	for len(stack) > 0 {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if nodes >= cfg.nodeBudget {
			// Budget exhausted: keep the unrefined estimates for whatever
			// is left on the stack, charging each interval's last known
			// error bound rather than spending more evaluations.
			value += iv.estimate
			errorSum += iv.errBound
			converged = false

			continue
		}

		m := 0.5 * (iv.a + iv.b)
		flm := eval(0.5 * (iv.a + m))
		frm := eval(0.5 * (m + iv.b))

		left := simpson(iv.a, m, iv.fa, flm, iv.fm)
		right := simpson(m, iv.b, iv.fm, frm, iv.fb)
		delta := left + right - iv.estimate

		refined := left + right + delta/15
		localErr := math.Abs(delta) / 15

		accept := localErr <= iv.tolerance
		forced := false

		switch {
		case accept:
		case iv.depth >= cfg.maxDepth:
			forced = true
		case spacingCollapsed(iv.a, iv.b):
			// Bisecting further would place nodes below machine epsilon
			// spacing; stop refining instead of looping.
			forced = true
		}

		if accept || forced {
			value += refined
			errorSum += localErr

			if forced && localErr > iv.tolerance {
				converged = false
			}

			continue
		}

		half := iv.tolerance / 2
		childErr := localErr / 2
		stack = append(stack,
			interval{
				a: iv.a, b: m,
				fa: iv.fa, fm: flm, fb: iv.fm,
				estimate: left, errBound: childErr, tolerance: half, depth: iv.depth + 1,
			},
			interval{
				a: m, b: iv.b,
				fa: iv.fm, fm: frm, fb: iv.fb,
				estimate: right, errBound: childErr, tolerance: half, depth: iv.depth + 1,
			},
		)
	}

	if errorSum > globalTol {
		converged = false
	}

	return Result{
		Value:         value,
		ErrorEstimate: errorSum,
		Nodes:         nodes,
		Converged:     converged,
	}
}

// simpson is the three-point Simpson rule over [a, b].
func simpson(a, b, fa, fm, fb float64) float64 {
	return (b - a) / 6 * (fa + 4*fm + fb)
}

// spacingCollapsed reports whether [a, b] is too narrow to bisect in
// float64 without the midpoints degenerating onto the endpoints.
func spacingCollapsed(a, b float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		scale = 1
	}

	return b-a <= 8*math.SmallestNonzeroFloat64 || b-a <= 8*scale*machineEpsilon
}
