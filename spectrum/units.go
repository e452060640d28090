package spectrum

import "fmt"

// Energy and direction units tags. Reductions are defined only when a
// container's EnergyUnits matches the tag expected for its rank; anything
// else yields an UnknownUnitsError instead of a numeric result.
const (
	// UnitsEnergy1D is the omnidirectional energy density unit.
	UnitsEnergy1D = "m2/Hz"
	// UnitsEnergy2D is the directional energy density unit.
	UnitsEnergy2D = "m2/Hz/deg"

	// UnitsDegreesNorth is the nautical direction convention (CF units).
	UnitsDegreesNorth = "degrees_north"
	// UnitsDegreesTrue is the cartesian direction convention.
	UnitsDegreesTrue = "degrees_true"

	// UnitsSpreadingDeg tags the spreading exponent arrays of 1D spectra.
	UnitsSpreadingDeg = "degr"
)

// UnknownUnitsError reports a reduction invoked on a container whose energy
// units do not match the tag the reduction integrates against.
type UnknownUnitsError struct {
	Units string
	Want  string
}

func (e *UnknownUnitsError) Error() string {
	return fmt.Sprintf("spectrum: unknown energy units %q, want %q", e.Units, e.Want)
}

// ShapeError reports an array supplied at construction whose shape does not
// match the shape implied by the container's axes.
type ShapeError struct {
	Field string
	Want  []int
	Got   []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("spectrum: %s has shape %v, axes imply %v", e.Field, e.Got, e.Want)
}
