package spectrum

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/coastalgo/oceanwaves/algorithms/quadrature"
	"github.com/coastalgo/oceanwaves/logging"
)

// Spectral is the capability set shared by the 1D and 2D containers. The
// moment reductions are written once against this interface: a directional
// spectrum satisfies OmnidirectionalRow by integrating over direction (with
// the sign correction applied there), an omnidirectional spectrum returns its
// energy rows directly.
type Spectral interface {
	Frequencies() []float64
	Shape() (nt, nxy int)
	Metadata() Metadata

	// OmnidirectionalRow returns the m2/Hz energy density over frequency
	// at one (time, location) cell, or an UnknownUnitsError when the
	// container's units tag does not match its rank.
	OmnidirectionalRow(it, ix int) ([]float64, error)

	// FrequencyEnvelope returns the per-frequency values used for peak
	// picking at one (time, location) cell.
	FrequencyEnvelope(it, ix int) ([]float64, error)
}

// Directional is the extra capability of spectra that resolve direction.
type Directional interface {
	PeakDirectionAt(it, ix int) (float64, error)
}

// reduceGrid applies a per-cell reduction over the whole (time, location)
// grid. The first failing cell aborts the reduction; a units mismatch is
// additionally surfaced as a warning diagnostic.
func reduceGrid(s Spectral, cell func(it, ix int) (float64, error)) ([][]float64, error) {
	nt, nxy := s.Shape()
	out := newGrid2(nt, nxy)
	for it := 0; it < nt; it++ {
		for ix := 0; ix < nxy; ix++ {
			v, err := cell(it, ix)
			if err != nil {
				warnUnknownUnits(s, err)
				return nil, err
			}
			out[it][ix] = v
		}
	}
	return out, nil
}

func warnUnknownUnits(s Spectral, err error) {
	var unitsErr *UnknownUnitsError
	if errors.As(err, &unitsErr) {
		logging.Warn("spectral reduction skipped: unknown energy units", logging.Fields{
			"units":  unitsErr.Units,
			"want":   unitsErr.Want,
			"source": s.Metadata().Source,
		})
	}
}

func hm0Grid(s Spectral, fmin, fmax float64) ([][]float64, error) {
	return reduceGrid(s, func(it, ix int) (float64, error) {
		return hm0At(s, it, ix, fmin, fmax)
	})
}

func tm01Grid(s Spectral) ([][]float64, error) {
	return reduceGrid(s, func(it, ix int) (float64, error) {
		return tm01At(s, it, ix)
	})
}

func tm02Grid(s Spectral) ([][]float64, error) {
	return reduceGrid(s, func(it, ix int) (float64, error) {
		return tm02At(s, it, ix)
	})
}

func tpGrid(s Spectral) ([][]float64, error) {
	return reduceGrid(s, func(it, ix int) (float64, error) {
		return tpAt(s, it, ix)
	})
}

// hm0At computes 4*sqrt(m0) for one cell, with m0 taken over the [fmin,
// fmax] frequency band.
func hm0At(s Spectral, it, ix int, fmin, fmax float64) (float64, error) {
	row, err := s.OmnidirectionalRow(it, ix)
	if err != nil {
		return math.NaN(), err
	}
	m0, err := quadrature.BandIntegral(s.Frequencies(), row, fmin, fmax)
	if err != nil {
		return math.NaN(), err
	}
	return 4 * math.Sqrt(m0), nil
}

// tm01At computes m0/m1 for one cell.
func tm01At(s Spectral, it, ix int) (float64, error) {
	m0, m1, err := momentsAt(s, it, ix, 1)
	if err != nil {
		return math.NaN(), err
	}
	return m0 / m1, nil
}

// tm02At computes sqrt(m0/m2) for one cell.
func tm02At(s Spectral, it, ix int) (float64, error) {
	m0, m2, err := momentsAt(s, it, ix, 2)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(m0 / m2), nil
}

// tpAt computes 1/f at the peak of the frequency envelope for one cell.
func tpAt(s Spectral, it, ix int) (float64, error) {
	env, err := s.FrequencyEnvelope(it, ix)
	if err != nil {
		return math.NaN(), err
	}
	return 1 / s.Frequencies()[floats.MaxIdx(env)], nil
}

// momentsAt returns the zeroth and order-th spectral moments for one cell.
func momentsAt(s Spectral, it, ix, order int) (m0, mk float64, err error) {
	row, err := s.OmnidirectionalRow(it, ix)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	f := s.Frequencies()
	if m0, err = quadrature.Moment(f, row, 0); err != nil {
		return math.NaN(), math.NaN(), err
	}
	if mk, err = quadrature.Moment(f, row, order); err != nil {
		return math.NaN(), math.NaN(), err
	}
	return m0, mk, nil
}
