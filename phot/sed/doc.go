// Package sed defines the spectral energy distribution value type consumed
// by synthetic photometry.
//
// A [Spectrum] is an ordered sequence of (wavelength, flux density) samples
// with strictly increasing wavelengths. It is treated as immutable: the
// constructor copies its inputs and every operation returns a new Spectrum.
//
// Beyond validation and resampling, the package provides
// [Spectrum.SmoothGaussian], an FFT-based Gaussian kernel convolution used
// to degrade a model spectrum to an instrument's spectral resolution before
// comparing against observed photometry.
package sed
