// Package units provides shared constants and validation for distance units
package units

import "strconv"

// Inches is a signed distance in whole inches.
type Inches int

const (
	// MicrosPerInch is the echo time, in microseconds, for sound to cover
	// one inch. Raw samples are divided by this before halving.
	MicrosPerInch = 71

	// RoundTrip accounts for the echo covering the distance twice.
	RoundTrip = 2

	// InvalidDistance marks a measurement rejected by the range check. It is
	// negative so it can never be a legitimate distance.
	InvalidDistance Inches = -1
)

// MicrosToInches converts an echo duration in microseconds to inches.
// Integer division truncates toward zero; remainders are discarded.
func MicrosToInches(micros int) Inches {
	return Inches(micros / MicrosPerInch / RoundTrip)
}

// Range is a half-open interval [Min, Max) of accepted distances.
type Range struct {
	Min Inches
	Max Inches
}

// Contains reports whether d lies in [Min, Max).
func (r Range) Contains(d Inches) bool {
	return r.Min <= d && d < r.Max
}

// Validate returns d when it lies inside r and InvalidDistance otherwise.
func (r Range) Validate(d Inches) Inches {
	if r.Contains(d) {
		return d
	}
	return InvalidDistance
}

// Valid reports whether d is a legitimate distance rather than the marker.
func (d Inches) Valid() bool {
	return d != InvalidDistance
}

// String renders d as decimal text.
func (d Inches) String() string {
	return strconv.Itoa(int(d))
}
