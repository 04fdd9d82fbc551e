package neighborhood

import "github.com/kilianp07/vrptw/core/model"

// Exhaustive enumerates every relocate (i, j, k) with i != k and every swap
// between vehicle pairs i < k. Swapping (k, l) with (i, j) yields the same
// routing as (i, j) with (k, l), so each unordered pair is tried once.
type Exhaustive struct{}

// Generate implements Generator.
func (Exhaustive) Generate(sol *model.Solution) []Candidate {
	load := loads(sol)
	var out []Candidate
	n := len(sol.Vehicles)
	for i := 0; i < n; i++ {
		for j := range sol.Vehicles[i].Route {
			for k := 0; k < n; k++ {
				if k == i {
					continue
				}
				if c, ok := relocate(sol, load, i, j, k); ok {
					out = append(out, c)
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		for k := i + 1; k < n; k++ {
			out = appendSwaps(out, sol, load, i, k)
		}
	}
	return out
}

func appendSwaps(out []Candidate, sol *model.Solution, load []int, i, k int) []Candidate {
	for j := range sol.Vehicles[i].Route {
		for l := range sol.Vehicles[k].Route {
			if c, ok := swap(sol, load, i, j, k, l); ok {
				out = append(out, c)
			}
		}
	}
	return out
}
