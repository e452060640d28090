package spectrum

import (
	"fmt"
	"math"

	"github.com/coastalgo/oceanwaves/algorithms/jonswap"
	"github.com/coastalgo/oceanwaves/logging"
)

// Spectrum1D is an omnidirectional wave spectrum: energy density in m2/Hz
// over a (time, location, frequency) grid. Direction and Spreading carry the
// meta-parameters of an implied directional kernel per cell, not integrated
// energy.
//
// The axis slices (F and the Metadata axes) are fixed at construction and
// must not be mutated afterwards; Energy, Direction and Spreading are owned
// by the container and may be filled in place by a generator or by ingestion
// code. A single instance is not safe for concurrent mutation.
type Spectrum1D struct {
	F []float64

	Energy    [][][]float64
	Direction [][][]float64
	Spreading [][][]float64

	EnergyUnits    string
	DirectionUnits string
	SpreadingUnits string

	Meta Metadata

	logger logging.Logger
}

// Data1D carries externally produced rank-1 arrays into NewSpectrum1D.
// Every supplied array must match the (nt, nxy, nf) shape implied by the
// axes; nil fields are allocated NaN-filled.
type Data1D struct {
	Energy    [][][]float64
	Direction [][][]float64
	Spreading [][][]float64
}

// NewSpectrum1D constructs an omnidirectional spectrum container over the
// frequency axis f, which must be strictly ascending and positive. Supplied
// data arrays are validated against the axes-implied shape; a mismatch is a
// construction error, never a reshape.
func NewSpectrum1D(f []float64, meta Metadata, data Data1D) (*Spectrum1D, error) {
	if err := validateFrequencyAxis(f); err != nil {
		return nil, err
	}

	nt, nxy := meta.dims()
	nf := len(f)

	s := &Spectrum1D{
		F:              f,
		EnergyUnits:    UnitsEnergy1D,
		DirectionUnits: UnitsDegreesNorth,
		SpreadingUnits: UnitsSpreadingDeg,
		Meta:           meta,
		logger: logging.WithFields(logging.Fields{
			"component": "spectrum1d",
			"source":    meta.Source,
		}),
	}

	var err error
	if s.Energy, err = acceptGrid3("energy", data.Energy, nt, nxy, nf); err != nil {
		return nil, err
	}
	if s.Direction, err = acceptGrid3("direction", data.Direction, nt, nxy, nf); err != nil {
		return nil, err
	}
	if s.Spreading, err = acceptGrid3("spreading", data.Spreading, nt, nxy, nf); err != nil {
		return nil, err
	}

	return s, nil
}

// FromJonswap fills the container with a JONSWAP shape per (time, location)
// cell and broadcasts the peak direction and spreading exponent over
// frequency. It returns the container to support chained construction.
func (s *Spectrum1D) FromJonswap(hm0, tp, peakDir, ms float64, opts jonswap.Options) (*Spectrum1D, error) {
	energy, err := jonswap.Generate(s.F, hm0, tp, opts)
	if err != nil {
		return nil, err
	}

	nt, nxy := s.Shape()
	for it := 0; it < nt; it++ {
		for ix := 0; ix < nxy; ix++ {
			copy(s.Energy[it][ix], energy)
			for i := range s.F {
				s.Direction[it][ix][i] = peakDir
				s.Spreading[it][ix][i] = ms
			}
		}
	}
	s.EnergyUnits = UnitsEnergy1D

	s.logger.Debug("generated JONSWAP spectrum", logging.Fields{
		"hm0": hm0, "tp": tp, "pdir": peakDir, "ms": ms,
	})

	return s, nil
}

// Frequencies returns the frequency axis. Callers must not mutate it.
func (s *Spectrum1D) Frequencies() []float64 { return s.F }

// Shape returns the (time, location) grid size.
func (s *Spectrum1D) Shape() (nt, nxy int) { return s.Meta.dims() }

// Metadata returns the shared container metadata.
func (s *Spectrum1D) Metadata() Metadata { return s.Meta }

// OmnidirectionalRow returns the energy density over frequency at one
// (time, location) cell, checking the energy units tag first.
func (s *Spectrum1D) OmnidirectionalRow(it, ix int) ([]float64, error) {
	if s.EnergyUnits != UnitsEnergy1D {
		return nil, &UnknownUnitsError{Units: s.EnergyUnits, Want: UnitsEnergy1D}
	}
	return s.Energy[it][ix], nil
}

// FrequencyEnvelope returns the per-frequency values used for peak picking.
// For an omnidirectional spectrum this is the energy row itself.
func (s *Spectrum1D) FrequencyEnvelope(it, ix int) ([]float64, error) {
	return s.OmnidirectionalRow(it, ix)
}

// Hm0 returns the significant wave height 4*sqrt(m0) per (time, location)
// cell, integrating the full frequency band.
func (s *Spectrum1D) Hm0() ([][]float64, error) {
	return s.Hm0Band(0, math.Inf(1))
}

// Hm0Band returns the significant wave height of the [fmin, fmax] sub-band.
// The band energy is read off the interpolated cumulative integral, so the
// result does not depend on how many frequency samples fall inside the band;
// (0, +Inf) is exactly the full-band Hm0.
func (s *Spectrum1D) Hm0Band(fmin, fmax float64) ([][]float64, error) {
	return hm0Grid(s, fmin, fmax)
}

// Tm01 returns the mean period m0/m1 per (time, location) cell.
func (s *Spectrum1D) Tm01() ([][]float64, error) {
	return tm01Grid(s)
}

// Tm02 returns the mean period sqrt(m0/m2) per (time, location) cell.
func (s *Spectrum1D) Tm02() ([][]float64, error) {
	return tm02Grid(s)
}

// Tp returns the peak period 1/f at the frequency of maximum energy per
// (time, location) cell.
func (s *Spectrum1D) Tp() ([][]float64, error) {
	return tpGrid(s)
}

func (s *Spectrum1D) String() string {
	nt, nxy := s.Shape()
	return fmt.Sprintf("<Spectrum1D shape:[nt:%d,nx:%d,nf:%d]: %q>", nt, nxy, len(s.F), s.Meta.Source)
}

// acceptGrid3 validates a supplied array or allocates a NaN-filled one.
func acceptGrid3(field string, g [][][]float64, nt, nxy, nf int) ([][][]float64, error) {
	if g == nil {
		return newGrid3(nt, nxy, nf), nil
	}
	if err := validateGrid3(field, g, nt, nxy, nf); err != nil {
		return nil, err
	}
	return g, nil
}

// validateFrequencyAxis enforces the frequency axis convention: strictly
// ascending, strictly positive, at least two samples.
func validateFrequencyAxis(f []float64) error {
	if len(f) < 2 {
		return fmt.Errorf("spectrum: need at least 2 frequencies, got %d", len(f))
	}
	for i, fi := range f {
		if fi <= 0 || math.IsNaN(fi) {
			return fmt.Errorf("spectrum: frequency must be positive, got %g at index %d", fi, i)
		}
		if i > 0 && fi <= f[i-1] {
			return fmt.Errorf("spectrum: frequency axis is not strictly ascending at index %d", i)
		}
	}
	return nil
}
