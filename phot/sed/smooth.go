package sed

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synphot/phot/interp"
)

const fwhmToSigma = 2.354820045030949 // 2*sqrt(2*ln 2)

// SmoothGaussian convolves the spectrum with a Gaussian kernel of the given
// full width at half maximum (in wavelength units), degrading it to an
// instrument's spectral resolution. The spectrum is resampled onto a
// uniform working grid, convolved in the frequency domain, and sampled back
// onto the original wavelengths. Edge attenuation from the finite domain is
// corrected with a coverage mask, so interior features keep their
// integrated flux.
func (s *Spectrum) SmoothGaussian(fwhm float64) (*Spectrum, error) {
	if fwhm <= 0 || math.IsNaN(fwhm) || math.IsInf(fwhm, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidKernel, fwhm)
	}

	lo, hi := s.Domain()

	step := meanSpacing(s.wavelengths)
	sigma := fwhm / fwhmToSigma

	// Keep at least a few working samples per kernel sigma.
	if sigma/4 < step {
		step = sigma / 4
	}

	n := int(math.Ceil((hi-lo)/step)) + 1

	// Snap the step so the grid lands exactly on hi; the convolution and
	// the kernel assume uniform spacing throughout.
	step = (hi - lo) / float64(n-1)

	grid := make([]float64, n)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}

	grid[n-1] = hi

	ip, err := s.Interpolator(interp.MethodLinear)
	if err != nil {
		return nil, err
	}

	uniform, err := ip.Evaluate(grid)
	if err != nil {
		return nil, err
	}

	kernel := gaussianKernel(sigma, step)

	smoothed, err := convolveSame(uniform, kernel)
	if err != nil {
		return nil, err
	}

	// Coverage mask: convolving all-ones shows how much kernel mass fell
	// inside the domain at each point; dividing undoes the edge roll-off.
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}

	mask, err := convolveSame(ones, kernel)
	if err != nil {
		return nil, err
	}

	for i := range smoothed {
		if mask[i] > 0 {
			smoothed[i] /= mask[i]
		}
	}

	out, err := interp.Evaluate(grid, smoothed, s.wavelengths, interp.MethodLinear)
	if err != nil {
		return nil, err
	}

	return New(s.wavelengths, out)
}

// gaussianKernel builds a unit-area symmetric Gaussian sampled at the given
// step, truncated at four sigma.
func gaussianKernel(sigma, step float64) []float64 {
	half := int(math.Ceil(4 * sigma / step))
	kernel := make([]float64, 2*half+1)

	sum := 0.0

	for i := range kernel {
		d := float64(i-half) * step
		kernel[i] = math.Exp(-0.5 * d * d / (sigma * sigma))
		sum += kernel[i]
	}

	vecmath.ScaleBlock(kernel, kernel, 1/sum)

	return kernel
}

// convolveSame computes the central part of the linear convolution of data
// with a symmetric odd-length kernel via zero-padded FFTs.
func convolveSame(data, kernel []float64) ([]float64, error) {
	n := len(data)
	k := len(kernel)
	fftSize := nextPowerOf2(n + k - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("sed: failed to create FFT plan: %w", err)
	}

	dataPadded := make([]complex128, fftSize)
	for i, v := range data {
		dataPadded[i] = complex(v, 0)
	}

	kernelPadded := make([]complex128, fftSize)
	for i, v := range kernel {
		kernelPadded[i] = complex(v, 0)
	}

	dataFreq := make([]complex128, fftSize)
	if err := plan.Forward(dataFreq, dataPadded); err != nil {
		return nil, fmt.Errorf("sed: forward FFT failed: %w", err)
	}

	kernelFreq := make([]complex128, fftSize)
	if err := plan.Forward(kernelFreq, kernelPadded); err != nil {
		return nil, fmt.Errorf("sed: forward FFT failed: %w", err)
	}

	for i := range dataFreq {
		dataFreq[i] *= kernelFreq[i]
	}

	full := make([]complex128, fftSize)
	if err := plan.Inverse(full, dataFreq); err != nil {
		return nil, fmt.Errorf("sed: inverse FFT failed: %w", err)
	}

	// The kernel center sits at index (k-1)/2 of the full convolution.
	offset := (k - 1) / 2
	out := make([]float64, n)

	for i := range out {
		out[i] = real(full[i+offset])
	}

	return out, nil
}

func meanSpacing(xs []float64) float64 {
	return (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}

	return p
}
