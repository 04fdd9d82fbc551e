package geometry

import "gonum.org/v1/gonum/mat"

// Matrix caches pairwise distances between a fixed set of locations.
// Lookups for locations outside the set fall back to Distance.
type Matrix struct {
	index map[Location]int
	dist  *mat.SymDense
}

// NewMatrix precomputes the distances between all distinct points.
func NewMatrix(points []Location) *Matrix {
	index := make(map[Location]int, len(points))
	uniq := make([]Location, 0, len(points))
	for _, p := range points {
		if _, ok := index[p]; ok {
			continue
		}
		index[p] = len(uniq)
		uniq = append(uniq, p)
	}
	m := &Matrix{index: index}
	if len(uniq) == 0 {
		return m
	}
	m.dist = mat.NewSymDense(len(uniq), nil)
	for i := range uniq {
		for j := i + 1; j < len(uniq); j++ {
			m.dist.SetSym(i, j, float64(Distance(uniq[i], uniq[j])))
		}
	}
	return m
}

// Size returns the number of distinct cached locations.
func (m *Matrix) Size() int { return len(m.index) }

// Distance implements Metric.
func (m *Matrix) Distance(a, b Location) int {
	i, okA := m.index[a]
	j, okB := m.index[b]
	if !okA || !okB {
		return Distance(a, b)
	}
	return int(m.dist.At(i, j))
}
