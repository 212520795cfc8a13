// Package calib provides the dense linear solver and calibration fits used
// to tie instrumental photometry to a reference system.
//
// [Solve] is a least-squares solve with an explicit conditioning guard: a
// system whose condition number exceeds the configured threshold fails with
// [ErrSingularSystem] instead of silently returning a minimum-norm answer.
//
// [FitBandCalibration] fits the standard transformation
//
//	catalog = instrumental + zeroPoint + colorTerm*color
//
// across a set of standard stars observed in one band.
package calib
