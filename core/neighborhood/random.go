package neighborhood

import (
	"math/rand"

	"github.com/kilianp07/vrptw/core/model"
)

// RandomPair samples one pair of distinct vehicles per call and enumerates
// relocations in both directions plus all swaps between them. It trades
// completeness for speed on large fleets; the PRNG is injected so runs are
// reproducible.
type RandomPair struct {
	rnd *rand.Rand
}

// NewRandomPair returns a sampler seeded with seed.
func NewRandomPair(seed int64) *RandomPair {
	return NewRandomPairWithRand(rand.New(rand.NewSource(seed)))
}

// NewRandomPairWithRand uses the provided source. It is not safe for
// concurrent use.
func NewRandomPairWithRand(r *rand.Rand) *RandomPair {
	return &RandomPair{rnd: r}
}

// Generate implements Generator.
func (g *RandomPair) Generate(sol *model.Solution) []Candidate {
	n := len(sol.Vehicles)
	if n < 2 {
		return nil
	}
	i := g.rnd.Intn(n)
	k := g.rnd.Intn(n - 1)
	if k >= i {
		k++
	}
	load := loads(sol)
	var out []Candidate
	for _, p := range [][2]int{{i, k}, {k, i}} {
		for j := range sol.Vehicles[p[0]].Route {
			if c, ok := relocate(sol, load, p[0], j, p[1]); ok {
				out = append(out, c)
			}
		}
	}
	return appendSwaps(out, sol, load, min(i, k), max(i, k))
}
