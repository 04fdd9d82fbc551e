// Package evaluate scores solutions: total distance, capacity feasibility and
// the time-window schedule of each route.
package evaluate

import (
	"github.com/kilianp07/vrptw/core/geometry"
	"github.com/kilianp07/vrptw/core/model"
)

// Evaluator computes objective values from scratch. It holds no state beyond
// the metric and is safe for concurrent use when the metric is.
type Evaluator struct {
	Metric geometry.Metric
}

// New returns an Evaluator. A nil metric selects geometry.Euclidean.
func New(metric geometry.Metric) Evaluator {
	if metric == nil {
		metric = geometry.Euclidean{}
	}
	return Evaluator{Metric: metric}
}

// RouteDistance is depot -> route... -> depot, or zero for an empty route.
func (e Evaluator) RouteDistance(v *model.Vehicle) int {
	if len(v.Route) == 0 {
		return 0
	}
	total := 0
	prev := v.Depot
	for _, c := range v.Route {
		total += e.Metric.Distance(prev, c.Location)
		prev = c.Location
	}
	return total + e.Metric.Distance(prev, v.Depot)
}

// TotalDistance sums RouteDistance over all vehicles.
func (e Evaluator) TotalDistance(s *model.Solution) int {
	total := 0
	for _, v := range s.Vehicles {
		total += e.RouteDistance(v)
	}
	return total
}

// Feasible reports whether all vehicles respect their capacity.
func (e Evaluator) Feasible(s *model.Solution) bool { return s.Feasible() }
