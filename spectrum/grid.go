package spectrum

import "math"

// newGrid3 allocates a NaN-filled (nt, nxy, nf) array.
func newGrid3(nt, nxy, nf int) [][][]float64 {
	g := make([][][]float64, nt)
	for it := range g {
		g[it] = make([][]float64, nxy)
		for ix := range g[it] {
			row := make([]float64, nf)
			for i := range row {
				row[i] = math.NaN()
			}
			g[it][ix] = row
		}
	}
	return g
}

// newGrid4 allocates a NaN-filled (nt, nxy, nf, nd) array.
func newGrid4(nt, nxy, nf, nd int) [][][][]float64 {
	g := make([][][][]float64, nt)
	for it := range g {
		g[it] = make([][][]float64, nxy)
		for ix := range g[it] {
			g[it][ix] = make([][]float64, nf)
			for iff := range g[it][ix] {
				row := make([]float64, nd)
				for i := range row {
					row[i] = math.NaN()
				}
				g[it][ix][iff] = row
			}
		}
	}
	return g
}

// newGrid2 allocates a zero (nt, nxy) parameter array.
func newGrid2(nt, nxy int) [][]float64 {
	g := make([][]float64, nt)
	for it := range g {
		g[it] = make([]float64, nxy)
	}
	return g
}

// validateGrid3 checks that a supplied rank-3 array matches (nt, nxy, nf)
// exactly. Ragged or mismatched arrays fail; nothing is broadcast or
// reshaped.
func validateGrid3(field string, g [][][]float64, nt, nxy, nf int) error {
	want := []int{nt, nxy, nf}
	if len(g) != nt {
		return &ShapeError{Field: field, Want: want, Got: shape3(g)}
	}
	for _, plane := range g {
		if len(plane) != nxy {
			return &ShapeError{Field: field, Want: want, Got: shape3(g)}
		}
		for _, row := range plane {
			if len(row) != nf {
				return &ShapeError{Field: field, Want: want, Got: shape3(g)}
			}
		}
	}
	return nil
}

// validateGrid4 checks that a supplied rank-4 array matches (nt, nxy, nf, nd)
// exactly.
func validateGrid4(field string, g [][][][]float64, nt, nxy, nf, nd int) error {
	want := []int{nt, nxy, nf, nd}
	if len(g) != nt {
		return &ShapeError{Field: field, Want: want, Got: shape4(g)}
	}
	for _, plane := range g {
		if len(plane) != nxy {
			return &ShapeError{Field: field, Want: want, Got: shape4(g)}
		}
		for _, block := range plane {
			if len(block) != nf {
				return &ShapeError{Field: field, Want: want, Got: shape4(g)}
			}
			for _, row := range block {
				if len(row) != nd {
					return &ShapeError{Field: field, Want: want, Got: shape4(g)}
				}
			}
		}
	}
	return nil
}

// shape3 reports the observed leading dimensions of a rank-3 array.
func shape3(g [][][]float64) []int {
	s := []int{len(g), 0, 0}
	if len(g) > 0 {
		s[1] = len(g[0])
		if len(g[0]) > 0 {
			s[2] = len(g[0][0])
		}
	}
	return s
}

// shape4 reports the observed leading dimensions of a rank-4 array.
func shape4(g [][][][]float64) []int {
	s := []int{len(g), 0, 0, 0}
	if len(g) > 0 {
		s[1] = len(g[0])
		if len(g[0]) > 0 {
			s[2] = len(g[0][0])
			if len(g[0][0]) > 0 {
				s[3] = len(g[0][0][0])
			}
		}
	}
	return s
}
