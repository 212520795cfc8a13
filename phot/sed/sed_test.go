package sed

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synphot/internal/testutil"
	"github.com/cwbudde/algo-synphot/phot/interp"
)

func rampSpectrum(t *testing.T) *Spectrum {
	t.Helper()

	wl := []float64{1, 2, 3, 4, 5}
	fl := []float64{10, 20, 30, 40, 50}

	s, err := New(wl, fl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return s
}

func TestNewMalformed(t *testing.T) {
	tests := []struct {
		name   string
		wl, fl []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"too short", []float64{1}, []float64{1}},
		{"non-monotonic", []float64{1, 3, 2}, []float64{1, 2, 3}},
		{"duplicate", []float64{1, 1}, []float64{1, 2}},
		{"nan wavelength", []float64{math.NaN(), 1}, []float64{1, 2}},
		{"inf flux", []float64{1, 2}, []float64{1, math.Inf(1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.wl, tc.fl); !errors.Is(err, ErrMalformedSpectrum) {
				t.Fatalf("got %v, want ErrMalformedSpectrum", err)
			}
		})
	}
}

func TestSpectrumImmutable(t *testing.T) {
	wl := []float64{1, 2, 3}
	fl := []float64{1, 2, 3}

	s, err := New(wl, fl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	wl[0] = 99
	fl[0] = 99

	if s.Wavelengths()[0] == 99 || s.Flux()[0] == 99 {
		t.Fatal("spectrum aliased caller slices")
	}
}

func TestResample(t *testing.T) {
	s := rampSpectrum(t)

	r, err := s.Resample([]float64{1.5, 2.5, 3.5}, interp.MethodLinear)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, r.Flux(), []float64{15, 25, 35}, 1e-12)
}

func TestResampleOutOfDomain(t *testing.T) {
	s := rampSpectrum(t)

	if _, err := s.Resample([]float64{0.5}, interp.MethodLinear); !errors.Is(err, interp.ErrOutOfDomain) {
		t.Fatalf("got %v, want interp.ErrOutOfDomain", err)
	}
}

func TestWeightedFlux(t *testing.T) {
	s := rampSpectrum(t)

	got, err := s.WeightedFlux([]float64{1, 0.5, 0, 0.5, 1})
	if err != nil {
		t.Fatalf("WeightedFlux: %v", err)
	}

	want := []float64{10, 10, 0, 20, 50}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWeightedFluxLengthMismatch(t *testing.T) {
	s := rampSpectrum(t)

	if _, err := s.WeightedFlux([]float64{1, 2}); !errors.Is(err, ErrMalformedSpectrum) {
		t.Fatalf("got %v, want ErrMalformedSpectrum", err)
	}
}

func TestSmoothGaussianPreservesConstant(t *testing.T) {
	n := 200
	wl := make([]float64, n)
	fl := make([]float64, n)

	for i := range wl {
		wl[i] = 1 + float64(i)*0.01
		fl[i] = 7.5
	}

	s, err := New(wl, fl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sm, err := s.SmoothGaussian(0.1)
	if err != nil {
		t.Fatalf("SmoothGaussian: %v", err)
	}

	for i, v := range sm.Flux() {
		if math.Abs(v-7.5) > 1e-6 {
			t.Fatalf("index %d: constant not preserved: got %v", i, v)
		}
	}
}

func TestSmoothGaussianBroadensLine(t *testing.T) {
	// A narrow emission line on a zero continuum: smoothing must lower the
	// peak, widen the profile, and keep the integrated flux.
	wl, fl := testutil.GaussianEmissionLine(4, 6, 5, 0.01, 1, 0, 801)

	s, err := New(wl, fl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sm, err := s.SmoothGaussian(0.1)
	if err != nil {
		t.Fatalf("SmoothGaussian: %v", err)
	}

	peakBefore := maxOf(s.Flux())
	peakAfter := maxOf(sm.Flux())

	if peakAfter >= peakBefore*0.8 {
		t.Fatalf("peak not lowered: %v -> %v", peakBefore, peakAfter)
	}

	before := trapz(s.Wavelengths(), s.Flux())
	after := trapz(sm.Wavelengths(), sm.Flux())

	if math.Abs(after-before)/before > 0.02 {
		t.Fatalf("integrated flux not preserved: %v -> %v", before, after)
	}
}

func TestSmoothGaussianCoarseInputGrid(t *testing.T) {
	// Input spacing is coarser than a quarter of the kernel sigma, so the
	// working grid is resampled finer and its step does not divide the
	// domain evenly before snapping. Flux must still be conserved.
	wl, fl := testutil.GaussianEmissionLine(4, 6, 5, 0.05, 1, 0, 201)

	s, err := New(wl, fl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sm, err := s.SmoothGaussian(0.02)
	if err != nil {
		t.Fatalf("SmoothGaussian: %v", err)
	}

	before := trapz(s.Wavelengths(), s.Flux())
	after := trapz(sm.Wavelengths(), sm.Flux())

	if math.Abs(after-before)/before > 0.02 {
		t.Fatalf("integrated flux not preserved: %v -> %v", before, after)
	}
}

func TestSmoothGaussianInvalidWidth(t *testing.T) {
	s := rampSpectrum(t)

	for _, fwhm := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := s.SmoothGaussian(fwhm); !errors.Is(err, ErrInvalidKernel) {
			t.Fatalf("fwhm=%v: got %v, want ErrInvalidKernel", fwhm, err)
		}
	}
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, v := range xs {
		if v > m {
			m = v
		}
	}

	return m
}

func trapz(xs, ys []float64) float64 {
	sum := 0.0
	for i := 1; i < len(xs); i++ {
		sum += 0.5 * (ys[i] + ys[i-1]) * (xs[i] - xs[i-1])
	}

	return sum
}
