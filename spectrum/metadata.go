// Package spectrum holds typed, shape-validated containers for directional
// ocean-wave energy spectra over (time, location, frequency, direction) grids
// and reduces them to bulk wave-climate parameters (Hm0, Tm01, Tm02, Tp, peak
// direction) with trapezoidal spectral moments.
//
// Conventions follow CF practice unless stated otherwise: directions are
// nautical degrees_north, time is UTC, energy densities are m2/Hz
// (omnidirectional) or m2/Hz/deg (directional).
package spectrum

import "time"

// Metadata holds the shared, non-spectral state of a container. Every
// recognized field is enumerated here; there is no open-ended attribute set.
// Coordinates may be supplied as projected (X, Y with EPSG) or geographic
// (Lon, Lat) pairs, or both consistently; the library carries EPSG without
// interpreting it.
type Metadata struct {
	T []time.Time

	X   []float64
	Y   []float64
	Lon []float64
	Lat []float64
	// EPSG identifies the projection of (X, Y); coordinate conversion is
	// left to the caller.
	EPSG int

	Buoy   []string
	Sensor []string

	Source  string
	Text    string
	Version string
}

// dims returns the (time, location) grid size implied by the metadata.
// The location count is max(len(X), len(Lon)), whichever coordinate
// representation is populated. Empty axes imply a single unlabeled record.
func (m *Metadata) dims() (nt, nxy int) {
	nt = len(m.T)
	if nt == 0 {
		nt = 1
	}
	nxy = len(m.X)
	if len(m.Lon) > nxy {
		nxy = len(m.Lon)
	}
	if nxy == 0 {
		nxy = 1
	}
	return nt, nxy
}
