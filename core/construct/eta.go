package construct

import (
	"fmt"

	"github.com/kilianp07/vrptw/core/evaluate"
	"github.com/kilianp07/vrptw/core/geometry"
	"github.com/kilianp07/vrptw/core/model"
)

// Estimator predicts when vehicle v would reach customer c if c were
// appended to its route.
type Estimator interface {
	Arrival(v *model.Vehicle, c *model.Customer) int
}

// LatestWindow assumes the vehicle leaves its last stop at that stop's
// latest allowed time. It is an approximation, not a simulation, and is the
// default used by the construction heuristic.
type LatestWindow struct {
	Metric geometry.Metric
}

// Arrival implements Estimator.
func (e LatestWindow) Arrival(v *model.Vehicle, c *model.Customer) int {
	var t int
	if last := v.Last(); last != nil {
		t = last.Window.Latest + e.Metric.Distance(last.Location, c.Location)
	} else {
		t = e.Metric.Distance(v.Depot, c.Location)
	}
	return max(t, c.Window.Earliest)
}

// Cumulative simulates the route so far (waiting and service included) and
// adds the travel leg to c. Selecting it changes which customers the
// heuristic accepts compared to LatestWindow.
type Cumulative struct {
	Evaluator evaluate.Evaluator
}

// Arrival implements Estimator.
func (e Cumulative) Arrival(v *model.Vehicle, c *model.Customer) int {
	stops := e.Evaluator.Schedule(v)
	if len(stops) == 0 {
		return max(e.Evaluator.Metric.Distance(v.Depot, c.Location), c.Window.Earliest)
	}
	last := stops[len(stops)-1]
	t := last.Departure + e.Evaluator.Metric.Distance(last.Customer.Location, c.Location)
	return max(t, c.Window.Earliest)
}

const (
	ETALatestWindow = "latest_window"
	ETACumulative   = "cumulative"
)

// NewEstimator returns the estimator registered under name.
func NewEstimator(name string, metric geometry.Metric) (Estimator, error) {
	if metric == nil {
		metric = geometry.Euclidean{}
	}
	switch name {
	case "", ETALatestWindow:
		return LatestWindow{Metric: metric}, nil
	case ETACumulative:
		return Cumulative{Evaluator: evaluate.New(metric)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown eta estimator %q", model.ErrInvalidConfiguration, name)
	}
}
