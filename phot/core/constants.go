package core

// Physical constants (SI units, CODATA 2018).
const (
	// SpeedOfLight is the speed of light in vacuum in m/s.
	SpeedOfLight = 2.99792458e8
	// PlanckConstant is the Planck constant in J*s.
	PlanckConstant = 6.62607015e-34
	// BoltzmannConstant is the Boltzmann constant in J/K.
	BoltzmannConstant = 1.380649e-23
)

// Wavelength unit conversions.
const (
	// MicronToMeter converts micrometers to meters.
	MicronToMeter = 1e-6
	// AngstromToMeter converts angstroms to meters.
	AngstromToMeter = 1e-10
	// AngstromToMicron converts angstroms to micrometers.
	AngstromToMicron = 1e-4
)

// Jansky is the flux density unit 1 Jy in W/m^2/Hz.
const Jansky = 1e-26
