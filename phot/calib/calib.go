package calib

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by solver and fitting functions.
var (
	// ErrSingularSystem indicates a rank-deficient or ill-conditioned
	// system beyond the configured conditioning threshold.
	ErrSingularSystem = errors.New("calib: system is rank-deficient or ill-conditioned")
	// ErrDimensionMismatch indicates inconsistent matrix/vector sizes.
	ErrDimensionMismatch = errors.New("calib: dimension mismatch")
)

const defaultConditionThreshold = 1e12

type config struct {
	conditionThreshold float64
}

// Option configures the solver.
type Option func(*config)

// WithConditionThreshold sets the condition number above which a system is
// rejected as singular (default 1e12).
func WithConditionThreshold(threshold float64) Option {
	return func(cfg *config) {
		if threshold > 0 {
			cfg.conditionThreshold = threshold
		}
	}
}

// Solve computes the least-squares solution of A x = b. The system must
// have at least as many rows as columns; underdetermined and
// ill-conditioned systems fail with ErrSingularSystem rather than
// returning a minimum-norm answer unflagged.
func Solve(a *mat.Dense, b []float64, opts ...Option) ([]float64, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrDimensionMismatch)
	}

	cfg := config{conditionThreshold: defaultConditionThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rows, cols := a.Dims()

	if len(b) != rows {
		return nil, fmt.Errorf("%w: %d rows vs %d right-hand values", ErrDimensionMismatch, rows, len(b))
	}

	if rows < cols {
		return nil, fmt.Errorf("%w: underdetermined system (%dx%d)", ErrSingularSystem, rows, cols)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return nil, fmt.Errorf("%w: SVD factorization failed", ErrSingularSystem)
	}

	values := svd.Values(nil)
	smax := values[0]
	smin := values[len(values)-1]

	if smin == 0 || smax/smin > cfg.conditionThreshold {
		return nil, fmt.Errorf("%w: condition number %g exceeds threshold %g",
			ErrSingularSystem, smax/smin, cfg.conditionThreshold)
	}

	var qr mat.QR
	qr.Factorize(a)

	var x mat.Dense
	if err := qr.SolveTo(&x, false, mat.NewVecDense(rows, b)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	out := make([]float64, cols)
	for i := range out {
		out[i] = x.At(i, 0)
	}

	return out, nil
}

// Star is one standard-star measurement used in a band calibration fit.
type Star struct {
	// Instrumental is the measured instrumental magnitude in the band.
	Instrumental float64
	// Catalog is the reference catalog magnitude in the band.
	Catalog float64
	// Color is the catalog color index entering the color term.
	Color float64
}

// FitBandCalibration fits catalog = instrumental + zeroPoint +
// colorTerm*color over the given standard stars. At least two stars with
// distinct colors are required; identical colors make the color term
// unconstrained and fail with ErrSingularSystem.
func FitBandCalibration(stars []Star, opts ...Option) (zeroPoint, colorTerm float64, err error) {
	if len(stars) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 stars, have %d", ErrDimensionMismatch, len(stars))
	}

	design := mat.NewDense(len(stars), 2, nil)
	rhs := make([]float64, len(stars))

	for i, s := range stars {
		design.Set(i, 0, 1)
		design.Set(i, 1, s.Color)
		rhs[i] = s.Catalog - s.Instrumental
	}

	sol, err := Solve(design, rhs, opts...)
	if err != nil {
		return 0, 0, err
	}

	return sol[0], sol[1], nil
}

// Residuals returns catalog - (instrumental + zeroPoint + colorTerm*color)
// per star, the fit residuals in magnitudes.
func Residuals(stars []Star, zeroPoint, colorTerm float64) []float64 {
	out := make([]float64, len(stars))
	for i, s := range stars {
		out[i] = s.Catalog - s.Instrumental - zeroPoint - colorTerm*s.Color
	}

	return out
}
