package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/coastalgo/oceanwaves/algorithms/jonswap"
	"github.com/coastalgo/oceanwaves/algorithms/quadrature"
	"github.com/coastalgo/oceanwaves/algorithms/spreading"
	"github.com/coastalgo/oceanwaves/logging"
)

// Spectrum2D is a directional wave spectrum: energy density in m2/Hz/deg
// over a (time, location, frequency, direction) grid. The direction axis may
// be ascending or descending; reductions correct the sign of the direction
// integral exactly once.
//
// Axis slices are fixed at construction and must not be mutated afterwards;
// Energy is owned by the container and may be filled in place. A single
// instance is not safe for concurrent mutation.
type Spectrum2D struct {
	F         []float64
	Direction []float64

	Energy [][][][]float64

	EnergyUnits    string
	DirectionUnits string

	Meta Metadata

	logger logging.Logger
}

// Data2D carries an externally produced rank-2 energy array into
// NewSpectrum2D. It must match the (nt, nxy, nf, nd) shape implied by the
// axes; nil is allocated NaN-filled.
type Data2D struct {
	Energy [][][][]float64
}

// NewSpectrum2D constructs a directional spectrum container over the
// frequency axis f (strictly ascending, positive) and the direction axis
// dirs (degrees, ascending or descending). A supplied energy array is
// validated against the axes-implied shape; a mismatch is a construction
// error, never a reshape.
func NewSpectrum2D(f, dirs []float64, meta Metadata, data Data2D) (*Spectrum2D, error) {
	if err := validateFrequencyAxis(f); err != nil {
		return nil, err
	}
	if len(dirs) < 2 {
		return nil, fmt.Errorf("spectrum: need at least 2 directions, got %d", len(dirs))
	}

	nt, nxy := meta.dims()
	nf, nd := len(f), len(dirs)

	s := &Spectrum2D{
		F:              f,
		Direction:      dirs,
		EnergyUnits:    UnitsEnergy2D,
		DirectionUnits: UnitsDegreesNorth,
		Meta:           meta,
		logger: logging.WithFields(logging.Fields{
			"component": "spectrum2d",
			"source":    meta.Source,
		}),
	}

	if data.Energy == nil {
		s.Energy = newGrid4(nt, nxy, nf, nd)
	} else {
		if err := validateGrid4("energy", data.Energy, nt, nxy, nf, nd); err != nil {
			return nil, err
		}
		s.Energy = data.Energy
	}

	return s, nil
}

// FromJonswap fills the container with the product of a 1D JONSWAP shape and
// a cosine-power directional distribution around peakDir with exponent ms.
// It returns the container to support chained construction.
func (s *Spectrum2D) FromJonswap(hm0, tp, peakDir, ms float64, opts jonswap.Options) (*Spectrum2D, error) {
	energy1, err := jonswap.Generate(s.F, hm0, tp, opts)
	if err != nil {
		return nil, err
	}
	kernel, err := spreading.Weights(s.Direction, peakDir, ms, s.DirectionUnits)
	if err != nil {
		return nil, err
	}

	nt, nxy := s.Shape()
	for it := 0; it < nt; it++ {
		for ix := 0; ix < nxy; ix++ {
			for iff := range s.F {
				row := s.Energy[it][ix][iff]
				for id := range s.Direction {
					row[id] = kernel[id] * energy1[iff]
				}
			}
		}
	}
	s.EnergyUnits = UnitsEnergy2D

	s.logger.Debug("generated directional JONSWAP spectrum", logging.Fields{
		"hm0": hm0, "tp": tp, "pdir": peakDir, "ms": ms,
	})

	return s, nil
}

// Frequencies returns the frequency axis. Callers must not mutate it.
func (s *Spectrum2D) Frequencies() []float64 { return s.F }

// Shape returns the (time, location) grid size.
func (s *Spectrum2D) Shape() (nt, nxy int) { return s.Meta.dims() }

// Metadata returns the shared container metadata.
func (s *Spectrum2D) Metadata() Metadata { return s.Meta }

// OmnidirectionalRow integrates the energy density over direction at one
// (time, location) cell, yielding an m2/Hz row over frequency. The absolute
// value is taken here, once: a descending direction axis flips the sign of
// the partial integral and must not leak into the moments.
func (s *Spectrum2D) OmnidirectionalRow(it, ix int) ([]float64, error) {
	if s.EnergyUnits != UnitsEnergy2D {
		return nil, &UnknownUnitsError{Units: s.EnergyUnits, Want: UnitsEnergy2D}
	}
	row := make([]float64, len(s.F))
	for iff := range s.F {
		v, err := quadrature.SignedTrapezoid(s.Direction, s.Energy[it][ix][iff])
		if err != nil {
			return nil, err
		}
		row[iff] = math.Abs(v)
	}
	return row, nil
}

// FrequencyEnvelope returns the peak-over-direction energy per frequency at
// one (time, location) cell, used for peak picking.
func (s *Spectrum2D) FrequencyEnvelope(it, ix int) ([]float64, error) {
	if s.EnergyUnits != UnitsEnergy2D {
		return nil, &UnknownUnitsError{Units: s.EnergyUnits, Want: UnitsEnergy2D}
	}
	env := make([]float64, len(s.F))
	for iff := range s.F {
		env[iff] = floats.Max(s.Energy[it][ix][iff])
	}
	return env, nil
}

// PeakDirectionAt returns the direction whose peak-over-frequency energy is
// largest at one (time, location) cell.
func (s *Spectrum2D) PeakDirectionAt(it, ix int) (float64, error) {
	if s.EnergyUnits != UnitsEnergy2D {
		return math.NaN(), &UnknownUnitsError{Units: s.EnergyUnits, Want: UnitsEnergy2D}
	}
	best := make([]float64, len(s.Direction))
	for id := range s.Direction {
		max := s.Energy[it][ix][0][id]
		for iff := 1; iff < len(s.F); iff++ {
			if v := s.Energy[it][ix][iff][id]; v > max {
				max = v
			}
		}
		best[id] = max
	}
	return s.Direction[floats.MaxIdx(best)], nil
}

// Hm0 returns the significant wave height 4*sqrt(m0) per (time, location)
// cell, integrating over direction and the full frequency band.
func (s *Spectrum2D) Hm0() ([][]float64, error) {
	return s.Hm0Band(0, math.Inf(1))
}

// Hm0Band returns the significant wave height of the [fmin, fmax] frequency
// sub-band; (0, +Inf) is exactly the full-band Hm0.
func (s *Spectrum2D) Hm0Band(fmin, fmax float64) ([][]float64, error) {
	return hm0Grid(s, fmin, fmax)
}

// Tm01 returns the mean period m0/m1 per (time, location) cell.
func (s *Spectrum2D) Tm01() ([][]float64, error) {
	return tm01Grid(s)
}

// Tm02 returns the mean period sqrt(m0/m2) per (time, location) cell.
func (s *Spectrum2D) Tm02() ([][]float64, error) {
	return tm02Grid(s)
}

// Tp returns the peak period 1/f at the frequency whose peak-over-direction
// energy is largest, per (time, location) cell.
func (s *Spectrum2D) Tp() ([][]float64, error) {
	return tpGrid(s)
}

// PeakDirection returns the peak wave direction per (time, location) cell.
func (s *Spectrum2D) PeakDirection() ([][]float64, error) {
	return reduceGrid(s, s.PeakDirectionAt)
}

func (s *Spectrum2D) String() string {
	nt, nxy := s.Shape()
	return fmt.Sprintf("<Spectrum2D shape:[nt:%d,nx:%d,nf:%d,nd:%d]: %q>",
		nt, nxy, len(s.F), len(s.Direction), s.Meta.Source)
}
