package evaluate

import "github.com/kilianp07/vrptw/core/model"

// Stop is the timing of one visit. Vehicles leave the depot at t=0, wait
// when they arrive before the window opens and leave after the fixed
// service duration.
type Stop struct {
	Customer          *model.Customer
	Travel            int
	Arrival           int
	Waiting           int
	Departure         int
	RemainingCapacity int
	Late              bool
}

// Schedule simulates the route of v.
func (e Evaluator) Schedule(v *model.Vehicle) []Stop {
	stops := make([]Stop, 0, len(v.Route))
	now := 0
	load := 0
	prev := v.Depot
	for _, c := range v.Route {
		travel := e.Metric.Distance(prev, c.Location)
		reached := now + travel
		arrival := max(reached, c.Window.Earliest)
		load += c.Demand
		st := Stop{
			Customer:          c,
			Travel:            travel,
			Arrival:           arrival,
			Waiting:           arrival - reached,
			Departure:         arrival + c.ServiceDuration,
			RemainingCapacity: v.Capacity - load,
			Late:              reached > c.Window.Latest,
		}
		stops = append(stops, st)
		now = st.Departure
		prev = c.Location
	}
	return stops
}

// LateCustomers returns the ids of customers reached after their window
// closes, in route order.
func (e Evaluator) LateCustomers(s *model.Solution) []int {
	var late []int
	for _, v := range s.Vehicles {
		for _, st := range e.Schedule(v) {
			if st.Late {
				late = append(late, st.Customer.ID)
			}
		}
	}
	return late
}

// OnTime reports whether no customer is reached late.
func (e Evaluator) OnTime(s *model.Solution) bool {
	for _, v := range s.Vehicles {
		for _, st := range e.Schedule(v) {
			if st.Late {
				return false
			}
		}
	}
	return true
}
