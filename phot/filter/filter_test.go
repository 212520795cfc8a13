package filter

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func boxCurve() ([]float64, []float64) {
	wl := []float64{1.0, 1.01, 1.99, 2.0}
	tr := []float64{0, 1, 1, 0}

	return wl, tr
}

func TestNewCurveValid(t *testing.T) {
	wl, tr := boxCurve()

	c, err := NewCurve("box", wl, tr, Meta{ZeroPoint: 10, ZeroPointUnit: "Jy"})
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}

	if c.Name() != "box" {
		t.Fatalf("Name() = %q, want box", c.Name())
	}

	if c.ZeroPoint() != 10 || c.ZeroPointUnit() != "Jy" {
		t.Fatalf("zero point not carried: %v %q", c.ZeroPoint(), c.ZeroPointUnit())
	}

	lo, hi := c.Support()
	if lo != 1.01 || hi != 1.99 {
		t.Fatalf("Support() = [%v, %v], want [1.01, 1.99]", lo, hi)
	}

	// For a near-symmetric box around 1.5 the pivot lands close to center.
	if math.Abs(c.PivotWavelength()-1.5) > 0.05 {
		t.Fatalf("PivotWavelength() = %v, want ~1.5", c.PivotWavelength())
	}
}

func TestNewCurvePivotFromMeta(t *testing.T) {
	wl, tr := boxCurve()

	c, err := NewCurve("box", wl, tr, Meta{PivotWavelength: 1.234})
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}

	if c.PivotWavelength() != 1.234 {
		t.Fatalf("PivotWavelength() = %v, want 1.234 from metadata", c.PivotWavelength())
	}
}

func TestNewCurveMalformed(t *testing.T) {
	tests := []struct {
		name   string
		wl, tr []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"too short", []float64{1}, []float64{1}},
		{"non-monotonic", []float64{1, 3, 2}, []float64{0, 1, 0}},
		{"duplicate wavelength", []float64{1, 1, 2}, []float64{0, 1, 0}},
		{"negative wavelength", []float64{-1, 1}, []float64{1, 1}},
		{"transmission above 1", []float64{1, 2}, []float64{0.5, 1.5}},
		{"transmission below 0", []float64{1, 2}, []float64{-0.5, 0.5}},
		{"nan transmission", []float64{1, 2}, []float64{math.NaN(), 0.5}},
		{"all zero", []float64{1, 2, 3}, []float64{0, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCurve("bad", tc.wl, tc.tr, Meta{}); !errors.Is(err, ErrMalformedFilter) {
				t.Fatalf("got %v, want ErrMalformedFilter", err)
			}
		})
	}
}

func TestNewCurveClampsSlack(t *testing.T) {
	wl := []float64{1, 2, 3}
	tr := []float64{-1e-9, 1 + 1e-9, 0.5}

	c, err := NewCurve("slack", wl, tr, Meta{})
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}

	got := c.Transmission()
	if got[0] != 0 || got[1] != 1 {
		t.Fatalf("slack not clamped: %v", got)
	}
}

func TestCurveImmutable(t *testing.T) {
	wl, tr := boxCurve()

	c, err := NewCurve("box", wl, tr, Meta{})
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}

	wl[0] = 99
	tr[1] = 99

	if c.Wavelengths()[0] == 99 || c.Transmission()[1] == 99 {
		t.Fatal("curve aliased caller slices")
	}

	c.Wavelengths()[0] = 77
	if c.Wavelengths()[0] == 77 {
		t.Fatal("accessor returned a mutable view")
	}
}

func TestEffectiveWidthBox(t *testing.T) {
	// Unit-transmission box of width ~1; trapezoid area over the short
	// ramps contributes half a ramp each side.
	wl, tr := boxCurve()

	c, err := NewCurve("box", wl, tr, Meta{})
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}

	want := 0.98 + 0.01 // flat top + two half ramps
	if math.Abs(c.EffectiveWidth()-want) > 1e-12 {
		t.Fatalf("EffectiveWidth() = %v, want %v", c.EffectiveWidth(), want)
	}
}

func TestRegistryLoadGet(t *testing.T) {
	reg := NewRegistry()
	wl, tr := boxCurve()

	if _, err := reg.Load("box", wl, tr, Meta{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	c, err := reg.Get("box")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if c.Name() != "box" {
		t.Fatalf("Get returned %q", c.Name())
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Get("nope"); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("got %v, want ErrUnknownFilter", err)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	wl, tr := boxCurve()

	if _, err := reg.Load("box", wl, tr, Meta{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := reg.Load("box", wl, tr, Meta{}); !errors.Is(err, ErrDuplicateFilter) {
		t.Fatalf("got %v, want ErrDuplicateFilter", err)
	}
}

func TestRegistryMalformedFailsAtLoad(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Load("bad", []float64{2, 1}, []float64{1, 1}, Meta{}); !errors.Is(err, ErrMalformedFilter) {
		t.Fatalf("got %v, want ErrMalformedFilter", err)
	}

	if reg.Len() != 0 {
		t.Fatalf("malformed curve was stored anyway: %d entries", reg.Len())
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	wl, tr := boxCurve()

	for _, name := range []string{"z-band", "a-band", "m-band"} {
		if _, err := reg.Load(name, wl, tr, Meta{}); err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
	}

	names := reg.Names()
	want := []string{"a-band", "m-band", "z-band"}

	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	reg := NewRegistry()
	wl, tr := boxCurve()

	if _, err := reg.Load("box", wl, tr, Meta{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				if _, err := reg.Get("box"); err != nil {
					t.Errorf("Get: %v", err)
					return
				}

				_ = reg.Names()
			}
		}()
	}

	wg.Wait()
}
