package core

import (
	"errors"
	"math"
)

// ErrNonPositiveFlux indicates a magnitude conversion of zero or negative flux.
var ErrNonPositiveFlux = errors.New("core: flux must be positive for magnitude conversion")

// FluxToMagnitude converts a flux density to a magnitude relative to the
// given zero-point flux. A flux equal to zeroPoint maps to magnitude 0.
func FluxToMagnitude(flux, zeroPoint float64) (float64, error) {
	if flux <= 0 {
		return 0, ErrNonPositiveFlux
	}

	if zeroPoint <= 0 {
		return 0, ErrNonPositiveFlux
	}

	return -2.5 * math.Log10(flux/zeroPoint), nil
}

// MagnitudeToFlux converts a magnitude back to a flux density relative to
// the given zero-point flux.
func MagnitudeToFlux(mag, zeroPoint float64) float64 {
	return zeroPoint * math.Pow(10, -0.4*mag)
}

// PlanckLambda evaluates the Planck spectral radiance B_lambda(T) in
// W/m^3/sr for temperature tempK in kelvin and wavelength lambdaM in meters.
// Returns 0 for non-positive temperature or wavelength.
func PlanckLambda(tempK, lambdaM float64) float64 {
	if tempK <= 0 || lambdaM <= 0 {
		return 0
	}

	x := PlanckConstant * SpeedOfLight / (lambdaM * BoltzmannConstant * tempK)
	if x > 700 {
		// Exponent overflow territory; the radiance underflows to zero anyway.
		return 0
	}

	num := 2 * PlanckConstant * SpeedOfLight * SpeedOfLight
	den := math.Pow(lambdaM, 5) * (math.Exp(x) - 1)

	return num / den
}
