// Package neighborhood generates candidate solutions around a routing with
// relocate and swap moves between vehicles.
package neighborhood

import (
	"fmt"
	"slices"

	"github.com/kilianp07/vrptw/core/model"
)

// MoveKind identifies the operator that produced a candidate.
type MoveKind int

const (
	Relocate MoveKind = iota
	Swap
)

func (k MoveKind) String() string {
	switch k {
	case Relocate:
		return "relocate"
	case Swap:
		return "swap"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// Move describes a change relative to the source solution. Vehicles are
// addressed by index and customers by route position.
type Move struct {
	Kind    MoveKind
	From    int
	FromPos int
	To      int
	ToPos   int
}

func (m Move) String() string {
	return fmt.Sprintf("%s v%d[%d] <-> v%d[%d]", m.Kind, m.From, m.FromPos, m.To, m.ToPos)
}

// Candidate is a neighbour solution owning its own routes.
type Candidate struct {
	Solution *model.Solution
	Move     Move
}

// Generator produces the neighbourhood of a solution. Implementations must
// not modify sol and must return candidates that share no route containers.
type Generator interface {
	Generate(sol *model.Solution) []Candidate
}

func loads(sol *model.Solution) []int {
	out := make([]int, len(sol.Vehicles))
	for i, v := range sol.Vehicles {
		out[i] = v.Load()
	}
	return out
}

// relocate moves route position j of vehicle i to the end of vehicle k.
func relocate(sol *model.Solution, load []int, i, j, k int) (Candidate, bool) {
	c := sol.Vehicles[i].Route[j]
	if load[k]+c.Demand > sol.Vehicles[k].Capacity {
		return Candidate{}, false
	}
	next := sol.Clone()
	src, dst := next.Vehicles[i], next.Vehicles[k]
	src.Route = slices.Delete(src.Route, j, j+1)
	dst.Append(c)
	return Candidate{
		Solution: next,
		Move:     Move{Kind: Relocate, From: i, FromPos: j, To: k, ToPos: len(dst.Route) - 1},
	}, true
}

// swap exchanges position j of vehicle i with position l of vehicle k.
func swap(sol *model.Solution, load []int, i, j, k, l int) (Candidate, bool) {
	a := sol.Vehicles[i].Route[j]
	b := sol.Vehicles[k].Route[l]
	if load[i]-a.Demand+b.Demand > sol.Vehicles[i].Capacity ||
		load[k]-b.Demand+a.Demand > sol.Vehicles[k].Capacity {
		return Candidate{}, false
	}
	next := sol.Clone()
	next.Vehicles[i].Route[j] = b
	next.Vehicles[k].Route[l] = a
	return Candidate{
		Solution: next,
		Move:     Move{Kind: Swap, From: i, FromPos: j, To: k, ToPos: l},
	}, true
}

// Dedupe keeps the first candidate of every structurally distinct solution.
func Dedupe(cands []Candidate) []Candidate {
	seen := make(map[model.Key]struct{}, len(cands))
	out := cands[:0:0]
	for _, c := range cands {
		key := c.Solution.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
