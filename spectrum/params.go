package spectrum

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat"
)

// ScalarParams is the rank-0 container: bulk wave parameters per (time,
// location) cell, derived from a spectral container. All parameter grids
// share the (nt, nxy) shape of the source spectrum. MS is never derived
// (spectral-shape fitting is out of scope) and stays nil.
type ScalarParams struct {
	Hs      [][]float64
	Tp      [][]float64
	Tm01    [][]float64
	Tm02    [][]float64
	PeakDir [][]float64
	MS      [][]float64

	T    []time.Time
	Meta Metadata
}

// DeriveParams reduces a spectral container to its bulk parameters,
// copying the shared metadata. PeakDir is filled only when the source
// resolves direction. Cells are independent, so the grid is reduced in
// parallel, bounded by the number of CPUs; ctx cancels outstanding work.
func DeriveParams(ctx context.Context, s Spectral) (*ScalarParams, error) {
	nt, nxy := s.Shape()
	meta := s.Metadata()

	p := &ScalarParams{
		Hs:   newGrid2(nt, nxy),
		Tp:   newGrid2(nt, nxy),
		Tm01: newGrid2(nt, nxy),
		Tm02: newGrid2(nt, nxy),
		T:    meta.T,
		Meta: meta,
	}
	dir, directional := s.(Directional)
	if directional {
		p.PeakDir = newGrid2(nt, nxy)
	}

	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))
	var wg sync.WaitGroup
	errs := make([]error, nt*nxy)

	var acquireErr error
cells:
	for it := 0; it < nt; it++ {
		for ix := 0; ix < nxy; ix++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				acquireErr = err
				break cells
			}
			wg.Add(1)
			go func(it, ix int) {
				defer wg.Done()
				defer sem.Release(1)
				errs[it*nxy+ix] = deriveCell(p, s, dir, it, ix)
			}(it, ix)
		}
	}
	wg.Wait()

	if acquireErr != nil {
		return nil, acquireErr
	}
	for _, err := range errs {
		if err != nil {
			warnUnknownUnits(s, err)
			return nil, err
		}
	}
	return p, nil
}

// deriveCell fills every parameter grid at one (time, location) cell.
func deriveCell(p *ScalarParams, s Spectral, dir Directional, it, ix int) error {
	var err error
	if p.Hs[it][ix], err = hm0At(s, it, ix, 0, math.Inf(1)); err != nil {
		return err
	}
	if p.Tp[it][ix], err = tpAt(s, it, ix); err != nil {
		return err
	}
	if p.Tm01[it][ix], err = tm01At(s, it, ix); err != nil {
		return err
	}
	if p.Tm02[it][ix], err = tm02At(s, it, ix); err != nil {
		return err
	}
	if dir != nil {
		if p.PeakDir[it][ix], err = dir.PeakDirectionAt(it, ix); err != nil {
			return err
		}
	}
	return nil
}

// ParamSummary holds wave-climate summary statistics of one parameter over
// every valid (non-NaN) cell of the grid.
type ParamSummary struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64
	P25    float64
	P75    float64
}

// Summary returns per-parameter summary statistics keyed by parameter name
// (Hs, Tp, Tm01, Tm02 and, when present, PeakDir).
func (p *ScalarParams) Summary() (map[string]ParamSummary, error) {
	grids := map[string][][]float64{
		"Hs":   p.Hs,
		"Tp":   p.Tp,
		"Tm01": p.Tm01,
		"Tm02": p.Tm02,
	}
	if p.PeakDir != nil {
		grids["PeakDir"] = p.PeakDir
	}

	out := make(map[string]ParamSummary, len(grids))
	for name, grid := range grids {
		if grid == nil {
			continue
		}
		summary, err := summarize(grid)
		if err != nil {
			return nil, fmt.Errorf("spectrum: summarizing %s: %w", name, err)
		}
		out[name] = summary
	}
	return out, nil
}

func summarize(grid [][]float64) (ParamSummary, error) {
	var values []float64
	for _, row := range grid {
		for _, v := range row {
			if !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return ParamSummary{}, fmt.Errorf("no valid cells")
	}

	min, err := stats.Min(values)
	if err != nil {
		return ParamSummary{}, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return ParamSummary{}, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return ParamSummary{}, err
	}
	p25, err := stats.Percentile(values, 25)
	if err != nil {
		return ParamSummary{}, err
	}
	p75, err := stats.Percentile(values, 75)
	if err != nil {
		return ParamSummary{}, err
	}

	return ParamSummary{
		N:      len(values),
		Min:    min,
		Max:    max,
		Mean:   stat.Mean(values, nil),
		StdDev: stat.StdDev(values, nil),
		Median: median,
		P25:    p25,
		P75:    p75,
	}, nil
}

func (p *ScalarParams) String() string {
	if len(p.Hs) == 1 && len(p.Hs[0]) == 1 {
		return fmt.Sprintf("<Spectrum0D Hs=%g Tp=%g @ %v: %q>",
			p.Hs[0][0], p.Tp[0][0], p.T, p.Meta.Source)
	}
	return fmt.Sprintf("<Spectrum0D shape:[nt:%d,nx:%d]: %q>",
		len(p.Hs), len(p.Hs[0]), p.Meta.Source)
}
