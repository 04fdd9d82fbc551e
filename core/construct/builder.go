// Package construct builds the initial routing with a cheapest feasible
// insertion heuristic: at every step the (customer, vehicle) pair with the
// earliest estimated arrival is committed.
package construct

import (
	"fmt"
	"math"
	"slices"

	"github.com/kilianp07/vrptw/core/logger"
	"github.com/kilianp07/vrptw/core/model"
)

// Builder runs the construction heuristic.
type Builder struct {
	estimator Estimator
	log       logger.Logger
	// OnCommit, when set, is called after each customer is placed.
	OnCommit func(sol *model.Solution, v *model.Vehicle, c *model.Customer)
}

// NewBuilder returns a Builder using the given estimator.
func NewBuilder(est Estimator, log logger.Logger) *Builder {
	if est == nil {
		est, _ = NewEstimator(ETALatestWindow, nil)
	}
	return &Builder{estimator: est, log: logger.OrNop(log)}
}

// Build assigns customers to the vehicles' routes. Customers must not be
// visited and routes must be empty. When some customers cannot be placed the
// partial solution is returned along with an *model.InfeasibleAssignmentError.
func (b *Builder) Build(customers []*model.Customer, vehicles []*model.Vehicle) (*model.Solution, error) {
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("%w: no vehicles", model.ErrInvalidConfiguration)
	}
	sol := model.NewSolution(vehicles)
	unassigned := slices.Clone(customers)

	for len(unassigned) > 0 {
		bestIdx := -1
		var bestVehicle *model.Vehicle
		bestArrival := math.MaxInt

		for i, c := range unassigned {
			for _, v := range vehicles {
				if !v.CanAdd(c) {
					continue
				}
				arrival := b.estimator.Arrival(v, c)
				// strict comparison keeps the first pair encountered on ties
				if c.Window.Contains(arrival) && arrival < bestArrival {
					bestIdx, bestVehicle, bestArrival = i, v, arrival
				}
			}
		}
		if bestVehicle == nil {
			break
		}

		c := unassigned[bestIdx]
		bestVehicle.Append(c)
		c.Visited = true
		unassigned = slices.Delete(unassigned, bestIdx, bestIdx+1)
		b.log.Debugw("customer assigned", map[string]any{
			"customer": c.ID,
			"vehicle":  bestVehicle.Index,
			"arrival":  bestArrival,
		})
		if b.OnCommit != nil {
			b.OnCommit(sol, bestVehicle, c)
		}
	}

	if len(unassigned) == 0 {
		return sol, nil
	}
	sol.Unassigned = unassigned
	err := &model.InfeasibleAssignmentError{IDs: sol.UnassignedIDs()}
	b.log.Warnf("no feasible vehicle for remaining customers: %v", err)
	return sol, err
}
