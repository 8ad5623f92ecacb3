// Package similarity computes pairwise relative-intersection similarity
// between ligand fingerprints.
//
// Relative intersection is a containment measure, |A∩B| / min(|A|,|B|):
// a narrow fingerprint fully inside a broader one scores 1.
package similarity

import (
	"ligysis-core/errs"
	"ligysis-core/fingerprint"
)

// Matrix is a dense symmetric N×N similarity matrix with diagonal 1.
type Matrix struct {
	n int
	v []float64
}

// RelativeIntersection returns |a∩b| / min(|a|,|b|) for two sorted,
// duplicate-free residue lists. Both must be non-empty.
func RelativeIntersection(a, b []int) float64 {
	i, j, inter := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			inter++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	m := len(a)
	if len(b) < m {
		m = len(b)
	}
	return float64(inter) / float64(m)
}

// Build computes the similarity matrix over fps in the given order.
func Build(fps []fingerprint.Fingerprint) (*Matrix, error) {
	n := len(fps)
	for i, f := range fps {
		if len(f.Residues) == 0 {
			return nil, errs.Inputf("fingerprint %d (%q) has no residues", i, f.ID)
		}
	}
	m := &Matrix{n: n, v: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.v[i*n+i] = 1
		for j := i + 1; j < n; j++ {
			s := RelativeIntersection(fps[i].Residues, fps[j].Residues)
			m.v[i*n+j] = s
			m.v[j*n+i] = s
		}
	}
	return m, nil
}

// N is the number of fingerprints.
func (m *Matrix) N() int { return m.n }

// At returns sim(i, j).
func (m *Matrix) At(i, j int) float64 { return m.v[i*m.n+j] }

// Rows returns a copy of the matrix as nested slices.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		out[i] = append([]float64(nil), m.v[i*m.n:(i+1)*m.n]...)
	}
	return out
}

// Distance returns 1 - sim as nested slices; the diagonal is 0.
func (m *Matrix) Distance() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		row := make([]float64, m.n)
		for j := range row {
			if i != j {
				row[j] = 1 - m.v[i*m.n+j]
			}
		}
		out[i] = row
	}
	return out
}

// Condensed returns the upper triangle of the distance matrix in row-major
// order (i<j), the layout hierarchical clustering libraries consume.
func (m *Matrix) Condensed() []float64 {
	out := make([]float64, 0, m.n*(m.n-1)/2)
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			out = append(out, 1-m.v[i*m.n+j])
		}
	}
	return out
}
