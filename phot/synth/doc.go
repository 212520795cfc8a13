// Package synth computes synthetic broadband photometry: it convolves a
// spectral energy distribution with instrument transmission curves and
// integrates over wavelength to produce calibrated flux measurements.
//
// Per filter, [Compute] forms two integrands over the wavelength overlap of
// spectrum and filter support:
//
//	numerator   = SED(lambda) * T(lambda) * w(lambda)
//	denominator = T(lambda) * w(lambda)
//
// where the weight w is 1 for [ConventionEnergy] and lambda for
// [ConventionPhoton] (photon-counting detectors weight each photon by its
// wavelength). The mean flux density is the ratio of the two integrals,
// optionally converted to a magnitude against the filter's zero point.
//
// Failure isolation: one filter's error never aborts a batch. Each
// [Result] carries its own Err, and integrator non-convergence is reported
// through Result.Converged rather than as an error, so thousands of SEDs
// can be processed without a handful of stiff cases stopping the run.
package synth
