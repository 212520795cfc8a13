package testutil

import "math"

// FlatSpectrum generates a constant flux density over [lo, hi] with n
// evenly spaced samples.
func FlatSpectrum(lo, hi, value float64, n int) (wavelengths, flux []float64) {
	wavelengths = make([]float64, n)
	flux = make([]float64, n)

	for i := range wavelengths {
		wavelengths[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		flux[i] = value
	}

	return wavelengths, flux
}

// PowerLawSpectrum generates flux = scale * wavelength^index over [lo, hi].
func PowerLawSpectrum(lo, hi, scale, index float64, n int) (wavelengths, flux []float64) {
	wavelengths = make([]float64, n)
	flux = make([]float64, n)

	for i := range wavelengths {
		wavelengths[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		flux[i] = scale * math.Pow(wavelengths[i], index)
	}

	return wavelengths, flux
}

// GaussianEmissionLine generates a Gaussian line of the given center,
// sigma, and peak on a flat continuum.
func GaussianEmissionLine(lo, hi, center, sigma, peak, continuum float64, n int) (wavelengths, flux []float64) {
	wavelengths = make([]float64, n)
	flux = make([]float64, n)

	for i := range wavelengths {
		wavelengths[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		d := wavelengths[i] - center
		flux[i] = continuum + peak*math.Exp(-0.5*d*d/(sigma*sigma))
	}

	return wavelengths, flux
}

// BoxFilter generates a unit-transmission top-hat over [lo, hi] with short
// linear ramps at the edges; rampFrac is the ramp width as a fraction of
// the total width.
func BoxFilter(lo, hi, rampFrac float64) (wavelengths, transmission []float64) {
	ramp := (hi - lo) * rampFrac

	wavelengths = []float64{lo, lo + ramp, hi - ramp, hi}
	transmission = []float64{0, 1, 1, 0}

	return wavelengths, transmission
}

// GaussianFilter generates a Gaussian transmission profile sampled at n
// points over center +/- 4 sigma, peaking at the given peak transmission.
func GaussianFilter(center, sigma, peak float64, n int) (wavelengths, transmission []float64) {
	lo := center - 4*sigma
	hi := center + 4*sigma

	wavelengths = make([]float64, n)
	transmission = make([]float64, n)

	for i := range wavelengths {
		wavelengths[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		d := wavelengths[i] - center
		transmission[i] = peak * math.Exp(-0.5*d*d/(sigma*sigma))
	}

	return wavelengths, transmission
}
