// Package geometry provides the planar distance model used by the solver.
package geometry

import (
	"fmt"
	"math"
)

// Location is an immutable point on the integer grid.
type Location struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (l Location) String() string { return fmt.Sprintf("(%d, %d)", l.X, l.Y) }

// Metric returns the travel distance between two locations.
type Metric interface {
	Distance(a, b Location) int
}

// Euclidean is the default Metric.
type Euclidean struct{}

// Distance implements Metric.
func (Euclidean) Distance(a, b Location) int { return Distance(a, b) }

// Distance returns the Euclidean distance between a and b truncated toward
// zero, so Distance((0,0),(10,10)) is 14.
func Distance(a, b Location) int {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}
