// Package interp provides 1-D interpolation over irregularly sampled curves.
//
// Available methods:
//
//   - [MethodLinear]: piecewise-linear interpolation (fast, monotone, default)
//   - [MethodSpline]: natural cubic spline (smoother, higher fidelity)
//
// Queries strictly outside the sample domain fail with [ErrOutOfDomain]
// unless [WithZeroFill] is set, in which case they evaluate to zero. The
// zero-fill policy exists to represent the declared zero-transmission tail
// of an instrument filter without materializing it as samples.
//
// An [Interpolator] is immutable after construction and safe for concurrent
// use; spline coefficients are computed once up front.
package interp
