// Package itinerary turns a solution into the per-vehicle plan handed to
// report sinks.
package itinerary

import (
	"github.com/kilianp07/vrptw/core/evaluate"
	"github.com/kilianp07/vrptw/core/geometry"
	"github.com/kilianp07/vrptw/core/model"
)

// Leg is one drive followed by a visit. The final leg of a route returns to
// the depot and has ToDepot set.
type Leg struct {
	From              geometry.Location `json:"from"`
	To                geometry.Location `json:"to"`
	CustomerID        int               `json:"customer_id"`
	ToDepot           bool              `json:"to_depot,omitempty"`
	TravelDistance    int               `json:"travel_distance"`
	ArrivalTime       int               `json:"arrival_time"`
	WaitingTime       int               `json:"waiting_time"`
	ServiceTime       int               `json:"service_time"`
	DepartureTime     int               `json:"departure_time"`
	RemainingCapacity int               `json:"remaining_capacity"`
	Late              bool              `json:"late,omitempty"`
}

// Route is the itinerary of a single vehicle.
type Route struct {
	Vehicle     int   `json:"vehicle"`
	Capacity    int   `json:"capacity"`
	Demand      int   `json:"demand"`
	Distance    int   `json:"distance"`
	ServiceTime int   `json:"service_time"`
	ReturnTime  int   `json:"return_time"`
	Legs        []Leg `json:"legs"`
}

// Plan is the report of a run.
type Plan struct {
	RunID         string  `json:"run_id"`
	Instance      string  `json:"instance,omitempty"`
	TotalDistance int     `json:"total_distance"`
	Routes        []Route `json:"routes"`
	Unassigned    []int   `json:"unassigned,omitempty"`
}

// Build creates the plan of sol. Vehicles with an empty route are left out.
func Build(runID string, sol *model.Solution, eval evaluate.Evaluator) Plan {
	if eval.Metric == nil {
		eval = evaluate.New(nil)
	}
	plan := Plan{RunID: runID, Routes: []Route{}}
	for _, v := range sol.Vehicles {
		if len(v.Route) == 0 {
			continue
		}
		r := buildRoute(v, eval)
		plan.TotalDistance += r.Distance
		plan.Routes = append(plan.Routes, r)
	}
	if len(sol.Unassigned) > 0 {
		plan.Unassigned = sol.UnassignedIDs()
	}
	return plan
}

func buildRoute(v *model.Vehicle, eval evaluate.Evaluator) Route {
	r := Route{Vehicle: v.Index, Capacity: v.Capacity, Legs: make([]Leg, 0, len(v.Route)+1)}
	prev := v.Depot
	for _, st := range eval.Schedule(v) {
		c := st.Customer
		r.Legs = append(r.Legs, Leg{
			From:              prev,
			To:                c.Location,
			CustomerID:        c.ID,
			TravelDistance:    st.Travel,
			ArrivalTime:       st.Arrival,
			WaitingTime:       st.Waiting,
			ServiceTime:       c.ServiceDuration,
			DepartureTime:     st.Departure,
			RemainingCapacity: st.RemainingCapacity,
			Late:              st.Late,
		})
		r.Distance += st.Travel
		r.Demand += c.Demand
		r.ServiceTime += c.ServiceDuration
		prev = c.Location
	}
	last := r.Legs[len(r.Legs)-1]
	back := eval.Metric.Distance(prev, v.Depot)
	r.Legs = append(r.Legs, Leg{
		From:              prev,
		To:                v.Depot,
		ToDepot:           true,
		TravelDistance:    back,
		ArrivalTime:       last.DepartureTime + back,
		DepartureTime:     last.DepartureTime + back,
		RemainingCapacity: last.RemainingCapacity,
	})
	r.Distance += back
	r.ReturnTime = last.DepartureTime + back
	return r
}

// Customers returns the customer ids of the route in visiting order.
func (r Route) Customers() []int {
	ids := make([]int, 0, len(r.Legs))
	for _, l := range r.Legs {
		if !l.ToDepot {
			ids = append(ids, l.CustomerID)
		}
	}
	return ids
}
