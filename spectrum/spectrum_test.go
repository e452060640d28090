package spectrum

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/coastalgo/oceanwaves/algorithms/jonswap"
)

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func directionAxis(step float64) []float64 {
	n := int(360 / step)
	dirs := make([]float64, n)
	for i := range dirs {
		dirs[i] = float64(i) * step
	}
	return dirs
}

func TestNewSpectrum1DShapeMismatch(t *testing.T) {
	f := []float64{0.1, 0.2, 0.3, 0.4}

	// Axes imply (1, 1, 4); a (2, 3, 4) energy array must be rejected, not
	// broadcast.
	bad := make([][][]float64, 2)
	for it := range bad {
		bad[it] = make([][]float64, 3)
		for ix := range bad[it] {
			bad[it][ix] = make([]float64, 4)
		}
	}

	_, err := NewSpectrum1D(f, Metadata{}, Data1D{Energy: bad})
	require.Error(t, err)

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "energy", shapeErr.Field)
	assert.Equal(t, []int{1, 1, 4}, shapeErr.Want)
	assert.Equal(t, []int{2, 3, 4}, shapeErr.Got)
}

func TestNewSpectrum1DRaggedArray(t *testing.T) {
	f := []float64{0.1, 0.2, 0.3}
	ragged := [][][]float64{{{1, 2, 3}}}
	ragged[0][0] = []float64{1, 2} // wrong trailing length

	_, err := NewSpectrum1D(f, Metadata{}, Data1D{Spreading: ragged})
	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "spreading", shapeErr.Field)
}

func TestNewSpectrum1DBadFrequencyAxis(t *testing.T) {
	_, err := NewSpectrum1D([]float64{0.3, 0.2, 0.1}, Metadata{}, Data1D{})
	assert.Error(t, err)

	_, err = NewSpectrum1D([]float64{0, 0.1, 0.2}, Metadata{}, Data1D{})
	assert.Error(t, err)

	_, err = NewSpectrum1D([]float64{0.1}, Metadata{}, Data1D{})
	assert.Error(t, err)
}

func TestNewSpectrum1DDefaultsNaN(t *testing.T) {
	s, err := NewSpectrum1D([]float64{0.1, 0.2}, Metadata{}, Data1D{})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(s.Energy[0][0][0]))
	assert.True(t, math.IsNaN(s.Direction[0][0][1]))
	assert.True(t, math.IsNaN(s.Spreading[0][0][0]))
	assert.Equal(t, UnitsEnergy1D, s.EnergyUnits)
	assert.Equal(t, UnitsDegreesNorth, s.DirectionUnits)
}

func TestSpectrum1DFromJonswapScenario(t *testing.T) {
	f := linspace(0.03, 0.3, 100)

	s, err := NewSpectrum1D(f, Metadata{Source: "jonswap"}, Data1D{})
	require.NoError(t, err)

	s, err = s.FromJonswap(1.5, 8.0, 0, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	hs, err := s.Hm0()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, hs[0][0], 1.5*0.01)

	tp, err := s.Tp()
	require.NoError(t, err)
	assert.Equal(t, 1/f[floats.MaxIdx(s.Energy[0][0])], tp[0][0])
}

func TestSpectrum1DFromJonswapBroadcastsKernelParams(t *testing.T) {
	f := linspace(0.05, 0.25, 20)
	s, err := NewSpectrum1D(f, Metadata{}, Data1D{})
	require.NoError(t, err)

	_, err = s.FromJonswap(1.0, 5.0, -90, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	for i := range f {
		assert.Equal(t, -90.0, s.Direction[0][0][i])
		assert.Equal(t, 10.0, s.Spreading[0][0][i])
	}
	assert.Equal(t, UnitsEnergy1D, s.EnergyUnits)
}

func TestSpectrum1DBandIdentityAndMonotonicity(t *testing.T) {
	f := linspace(0.03, 0.3, 100)
	s, err := NewSpectrum1D(f, Metadata{}, Data1D{})
	require.NoError(t, err)
	_, err = s.FromJonswap(2.0, 7.0, 0, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	full, err := s.Hm0()
	require.NoError(t, err)
	identity, err := s.Hm0Band(0, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, full[0][0], identity[0][0])

	prev := 0.0
	for _, fmax := range []float64{0.08, 0.12, 0.2, 0.3} {
		band, err := s.Hm0Band(0, fmax)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, band[0][0], prev)
		assert.LessOrEqual(t, band[0][0], full[0][0])
		prev = band[0][0]
	}

	swell, err := s.Hm0Band(0.1, math.Inf(1))
	require.NoError(t, err)
	assert.LessOrEqual(t, swell[0][0], full[0][0])
}

func TestSpectrum1DPeriodOrdering(t *testing.T) {
	f := linspace(0.03, 0.3, 100)
	s, err := NewSpectrum1D(f, Metadata{}, Data1D{})
	require.NoError(t, err)
	_, err = s.FromJonswap(1.5, 8.0, 0, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	tm01, err := s.Tm01()
	require.NoError(t, err)
	tm02, err := s.Tm02()
	require.NoError(t, err)

	assert.LessOrEqual(t, tm02[0][0], tm01[0][0])
	assert.Greater(t, tm02[0][0], 0.0)
}

func TestSpectrum1DUnknownUnits(t *testing.T) {
	f := linspace(0.03, 0.3, 10)
	s, err := NewSpectrum1D(f, Metadata{}, Data1D{})
	require.NoError(t, err)
	s.EnergyUnits = "J/m2"

	for name, reduce := range map[string]func() ([][]float64, error){
		"Hm0":  s.Hm0,
		"Tm01": s.Tm01,
		"Tm02": s.Tm02,
		"Tp":   s.Tp,
	} {
		grid, err := reduce()
		assert.Nil(t, grid, name)

		var unitsErr *UnknownUnitsError
		require.True(t, errors.As(err, &unitsErr), name)
		assert.Equal(t, "J/m2", unitsErr.Units, name)
	}
}

func TestSpectrum1DString(t *testing.T) {
	f := linspace(0.03, 0.3, 100)
	s, err := NewSpectrum1D(f, Metadata{Source: "buoy42"}, Data1D{})
	require.NoError(t, err)

	assert.Equal(t, `<Spectrum1D shape:[nt:1,nx:1,nf:100]: "buoy42">`, s.String())
}

func TestNewSpectrum2DShapeMismatch(t *testing.T) {
	f := []float64{0.1, 0.2}
	dirs := []float64{0, 90, 180, 270}

	bad := newGrid4(1, 1, 2, 3) // wrong direction count

	_, err := NewSpectrum2D(f, dirs, Metadata{}, Data2D{Energy: bad})
	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, []int{1, 1, 2, 4}, shapeErr.Want)
	assert.Equal(t, []int{1, 1, 2, 3}, shapeErr.Got)
}

func TestSpectrum2DFromJonswapScenario(t *testing.T) {
	f := linspace(0.03, 0.3, 100)
	dirs := directionAxis(5)

	s, err := NewSpectrum2D(f, dirs, Metadata{Source: "jonswap"}, Data2D{})
	require.NoError(t, err)

	s, err = s.FromJonswap(2.0, 6.0, 135, 20, jonswap.DefaultOptions())
	require.NoError(t, err)

	hs, err := s.Hm0()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, hs[0][0], 2.0*0.01)

	pdir, err := s.PeakDirection()
	require.NoError(t, err)
	assert.InDelta(t, 135.0, pdir[0][0], 5.0)
}

func TestSpectrum2DDirectionReversalInvariance(t *testing.T) {
	f := linspace(0.03, 0.3, 60)
	asc := directionAxis(10)
	desc := make([]float64, len(asc))
	for i := range asc {
		desc[i] = asc[len(asc)-1-i]
	}

	up, err := NewSpectrum2D(f, asc, Metadata{}, Data2D{})
	require.NoError(t, err)
	_, err = up.FromJonswap(2.0, 6.0, 135, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	down, err := NewSpectrum2D(f, desc, Metadata{}, Data2D{})
	require.NoError(t, err)
	_, err = down.FromJonswap(2.0, 6.0, 135, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	for name, pair := range map[string][2]func() ([][]float64, error){
		"Hm0":  {up.Hm0, down.Hm0},
		"Tm01": {up.Tm01, down.Tm01},
		"Tm02": {up.Tm02, down.Tm02},
	} {
		a, err := pair[0]()
		require.NoError(t, err, name)
		b, err := pair[1]()
		require.NoError(t, err, name)
		assert.InDelta(t, a[0][0], b[0][0], 1e-12, name)
	}
}

func TestSpectrum2DTpMatchesOmnidirectional(t *testing.T) {
	f := linspace(0.03, 0.3, 100)
	dirs := directionAxis(5)

	s2, err := NewSpectrum2D(f, dirs, Metadata{}, Data2D{})
	require.NoError(t, err)
	_, err = s2.FromJonswap(1.5, 8.0, 135, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	s1, err := NewSpectrum1D(f, Metadata{}, Data1D{})
	require.NoError(t, err)
	_, err = s1.FromJonswap(1.5, 8.0, 135, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	tp2, err := s2.Tp()
	require.NoError(t, err)
	tp1, err := s1.Tp()
	require.NoError(t, err)
	assert.Equal(t, tp1[0][0], tp2[0][0])
}

func TestSpectrum2DMultiCellGrid(t *testing.T) {
	f := linspace(0.03, 0.3, 50)
	dirs := directionAxis(10)
	meta := Metadata{
		T:   make([]time.Time, 3),
		Lon: []float64{4.1, 4.2},
		Lat: []float64{52.0, 52.1},
	}

	s, err := NewSpectrum2D(f, dirs, meta, Data2D{})
	require.NoError(t, err)
	_, err = s.FromJonswap(1.0, 5.0, 90, 10, jonswap.DefaultOptions())
	require.NoError(t, err)

	hs, err := s.Hm0()
	require.NoError(t, err)
	require.Len(t, hs, 3)
	require.Len(t, hs[0], 2)

	// Generation is uniform over the grid; every cell carries the same Hs.
	for it := range hs {
		for ix := range hs[it] {
			assert.InDelta(t, hs[0][0], hs[it][ix], 1e-12)
		}
	}
}

func TestSpectrum2DUnknownUnits(t *testing.T) {
	f := linspace(0.03, 0.3, 10)
	dirs := directionAxis(30)

	s, err := NewSpectrum2D(f, dirs, Metadata{}, Data2D{})
	require.NoError(t, err)
	s.EnergyUnits = "m2"

	grid, err := s.Hm0()
	assert.Nil(t, grid)
	var unitsErr *UnknownUnitsError
	require.True(t, errors.As(err, &unitsErr))
	assert.Equal(t, UnitsEnergy2D, unitsErr.Want)

	_, err = s.PeakDirection()
	assert.True(t, errors.As(err, &unitsErr))
}

func TestSpectrum2DString(t *testing.T) {
	f := linspace(0.03, 0.3, 100)
	dirs := directionAxis(15)

	s, err := NewSpectrum2D(f, dirs, Metadata{Source: "model"}, Data2D{})
	require.NoError(t, err)

	assert.Equal(t, `<Spectrum2D shape:[nt:1,nx:1,nf:100,nd:24]: "model">`, s.String())
}

func TestShapeErrorMessage(t *testing.T) {
	err := &ShapeError{Field: "energy", Want: []int{1, 1, 4}, Got: []int{2, 3, 4}}
	assert.Contains(t, err.Error(), "energy")
	assert.Contains(t, err.Error(), "[2 3 4]")
	assert.Contains(t, err.Error(), "[1 1 4]")
}
