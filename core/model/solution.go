package model

import (
	"strconv"
	"strings"
)

// Key is the structural identity of a solution: the ordered customer ids of
// every route. Two solutions with equal keys are the same routing.
type Key string

// Solution is an ordered collection of vehicles. It is treated as a value:
// moves work on clones and never mutate a solution another holder can see.
type Solution struct {
	Vehicles   []*Vehicle
	Unassigned []*Customer
}

// NewSolution wraps the given vehicles.
func NewSolution(vehicles []*Vehicle) *Solution {
	return &Solution{Vehicles: vehicles}
}

// Clone returns a deep copy of the routes. Customer pointers are shared.
func (s *Solution) Clone() *Solution {
	cp := &Solution{Vehicles: make([]*Vehicle, len(s.Vehicles))}
	for i, v := range s.Vehicles {
		cp.Vehicles[i] = v.Clone()
	}
	if len(s.Unassigned) > 0 {
		cp.Unassigned = append([]*Customer(nil), s.Unassigned...)
	}
	return cp
}

// Key serialises the route sequences.
func (s *Solution) Key() Key {
	var b strings.Builder
	for i, v := range s.Vehicles {
		if i > 0 {
			b.WriteByte('|')
		}
		for j, c := range v.Route {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(c.ID))
		}
	}
	return Key(b.String())
}

// Feasible is true iff every vehicle respects its capacity.
func (s *Solution) Feasible() bool {
	for _, v := range s.Vehicles {
		if !v.WithinCapacity() {
			return false
		}
	}
	return true
}

// Complete reports whether every customer has been assigned.
func (s *Solution) Complete() bool { return len(s.Unassigned) == 0 }

// Assigned returns the number of customers placed on a route.
func (s *Solution) Assigned() int {
	n := 0
	for _, v := range s.Vehicles {
		n += len(v.Route)
	}
	return n
}

// UnassignedIDs returns the ids of the customers left out.
func (s *Solution) UnassignedIDs() []int {
	ids := make([]int, len(s.Unassigned))
	for i, c := range s.Unassigned {
		ids[i] = c.ID
	}
	return ids
}
