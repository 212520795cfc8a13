// Package filter defines instrument transmission curves and a load-once
// registry for sharing them across photometry calls.
//
// A [Curve] is an immutable value object: name, tabulated transmission over
// strictly increasing wavelengths, and calibration metadata (pivot
// wavelength, reference zero point). Transmission is defined as zero
// outside the tabulated support.
//
// The [Registry] follows a load-then-freeze lifecycle: populate it once at
// startup, then share it read-only across any number of concurrent
// photometry computations. No call mutates a stored curve.
//
// Parsing of on-disk filter formats is a caller responsibility; Load
// accepts in-memory wavelength/transmission slices plus metadata.
package filter
