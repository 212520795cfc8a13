// Package quad provides adaptive numerical integration with error control.
//
// The integrator is an adaptive composite Simpson rule: each subinterval's
// contribution is estimated with one and two Simpson panels, and any
// subinterval whose Richardson error estimate exceeds its proportional
// share of the global tolerance is bisected. Refinement starts from a
// coarse multi-panel grid rather than a single root panel, so periodic
// integrands whose structure aliases the endpoints and midpoint are still
// resolved. Refinement is driven by an explicit work stack, so memory
// stays bounded and the node budget is enforced exactly.
//
// Non-convergence is not an error. When the node budget or maximum depth is
// exhausted, or a subinterval collapses to machine-epsilon width, the
// integrator returns its best estimate with Converged=false and leaves the
// fatal/non-fatal decision to the caller. This keeps batch processing
// resilient to a handful of numerically stiff integrands.
package quad
