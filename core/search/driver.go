// Package search improves an initial routing with tabu search. Each round
// the full neighbourhood of the current solution is scored in parallel and
// the shortest admissible candidate becomes current, even when it is worse.
// The best solution seen is tracked separately.
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/vrptw/core/construct"
	"github.com/kilianp07/vrptw/core/evaluate"
	"github.com/kilianp07/vrptw/core/logger"
	"github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/model"
	"github.com/kilianp07/vrptw/core/neighborhood"
)

// Result is the outcome of a run.
type Result struct {
	RunID           string
	Instance        string
	Best            *model.Solution
	BestDistance    int
	InitialDistance int
	Iterations      int
	Reason          Reason
	// History holds the best distance before the first round and after
	// every completed round.
	History    []int
	Unassigned []int
	Duration   time.Duration
}

// Driver runs construction followed by tabu search.
type Driver struct {
	cfg     Config
	builder *construct.Builder
	gen     neighborhood.Generator
	eval    evaluate.Evaluator
	sink    metrics.SearchSink
	log     logger.Logger
	state   atomic.Int32

	// OnAccept, when set, is called after each round with the accepted
	// candidate and the tabu memory.
	OnAccept func(iteration int, accepted neighborhood.Candidate, tabu *TabuList)
}

type scored struct {
	distance   int
	admissible bool
}

// NewDriver validates cfg and wires the collaborators. A nil sink or logger
// is replaced by a no-op implementation.
func NewDriver(cfg Config, builder *construct.Builder, gen neighborhood.Generator, eval evaluate.Evaluator, sink metrics.SearchSink, log logger.Logger) (*Driver, error) {
	if builder == nil || gen == nil {
		return nil, fmt.Errorf("search: nil parameter provided to NewDriver")
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.TimeWindows == "" {
		cfg.TimeWindows = TimeWindowsStrict
	}
	if eval.Metric == nil {
		eval = evaluate.New(nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Driver{
		cfg:     cfg,
		builder: builder,
		gen:     gen,
		eval:    eval,
		sink:    metrics.OrNop(sink),
		log:     logger.OrNop(log),
	}, nil
}

// State returns the lifecycle state of the latest run.
func (d *Driver) State() State { return State(d.state.Load()) }

// Run builds the initial solution for inst and improves it. When the
// construction leaves customers out the search still runs on the partial
// solution and the *model.InfeasibleAssignmentError is returned next to the
// result.
func (d *Driver) Run(ctx context.Context, inst *model.Instance) (*Result, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	inst.Reset()
	initial, buildErr := d.builder.Build(inst.Customers, inst.NewVehicles())
	var infeasible *model.InfeasibleAssignmentError
	if buildErr != nil && !errors.As(buildErr, &infeasible) {
		return nil, fmt.Errorf("construct: %w", buildErr)
	}
	if infeasible != nil {
		d.log.Warnf("no feasible solution for %d remaining customer(s)", len(infeasible.IDs))
	}

	res := d.Search(ctx, initial)
	res.Instance = inst.Name
	if err := d.sink.RecordRun(metrics.RunEvent{
		RunID:           res.RunID,
		Instance:        inst.Name,
		Customers:       len(inst.Customers),
		Vehicles:        inst.Fleet.Count,
		Unassigned:      len(res.Unassigned),
		InitialDistance: res.InitialDistance,
		BestDistance:    res.BestDistance,
		Iterations:      res.Iterations,
		Reason:          string(res.Reason),
		Duration:        res.Duration,
		Time:            time.Now(),
	}); err != nil {
		d.log.Errorf("run metrics error: %v", err)
	}
	if infeasible != nil {
		return res, buildErr
	}
	return res, nil
}

// Search improves initial, which is never modified.
func (d *Driver) Search(ctx context.Context, initial *model.Solution) *Result {
	start := time.Now()
	d.state.Store(int32(StateInitial))
	if d.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.TimeLimit)
		defer cancel()
	}

	current := initial
	currentDist := d.eval.TotalDistance(current)
	best, bestDist := current, currentDist
	tabu := NewTabuList(d.cfg.TabuCapacity)
	res := &Result{
		RunID:           uuid.NewString(),
		InitialDistance: currentDist,
		History:         []int{bestDist},
		Unassigned:      initial.UnassignedIDs(),
	}
	d.log.Infow("search started", map[string]any{
		"run_id":     res.RunID,
		"distance":   currentDist,
		"iterations": d.cfg.MaxIterations,
	})

	d.state.Store(int32(StateIterating))
	res.Reason = ReasonBudget
	for iter := 1; iter <= d.cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			res.Reason = ReasonCancelled
			if errors.Is(err, context.DeadlineExceeded) {
				res.Reason = ReasonDeadline
			}
			break
		}
		roundStart := time.Now()
		cands := neighborhood.Dedupe(d.gen.Generate(current))
		scores := d.score(cands, tabu)

		pick := -1
		pickDist := math.MaxInt
		admissible := make([]float64, 0, len(cands))
		for i, s := range scores {
			if !s.admissible {
				continue
			}
			admissible = append(admissible, float64(s.distance))
			if s.distance < pickDist {
				pick, pickDist = i, s.distance
			}
		}
		if pick < 0 {
			res.Reason = ReasonEmptyNeighborhood
			d.log.Infof("no admissible move after %d iteration(s), stopping", res.Iterations)
			break
		}

		// the solution being left becomes forbidden so the move is not undone
		tabu.Push(current.Key())
		current, currentDist = cands[pick].Solution, pickDist
		improved := currentDist < bestDist
		if improved {
			best, bestDist = current, currentDist
		}
		res.Iterations = iter
		res.History = append(res.History, bestDist)

		d.log.Debugw("move accepted", map[string]any{
			"iteration": iter,
			"move":      cands[pick].Move.String(),
			"distance":  currentDist,
			"best":      bestDist,
		})
		if err := d.sink.RecordIteration(metrics.IterationEvent{
			RunID:           res.RunID,
			Iteration:       iter,
			Candidates:      len(cands),
			Admissible:      len(admissible),
			MeanDistance:    stat.Mean(admissible, nil),
			CurrentDistance: currentDist,
			BestDistance:    bestDist,
			Improved:        improved,
			Duration:        time.Since(roundStart),
			Time:            time.Now(),
		}); err != nil {
			d.log.Errorf("iteration metrics error: %v", err)
		}
		if d.OnAccept != nil {
			d.OnAccept(iter, cands[pick], tabu)
		}
	}
	d.state.Store(int32(StateTerminated))

	res.Best = best
	res.BestDistance = bestDist
	res.Duration = time.Since(start)
	d.log.Infow("search finished", map[string]any{
		"run_id":     res.RunID,
		"reason":     string(res.Reason),
		"iterations": res.Iterations,
		"initial":    res.InitialDistance,
		"best":       bestDist,
	})
	return res
}

// score computes distance and admissibility of every candidate. The tabu
// list is only read while the workers run.
func (d *Driver) score(cands []neighborhood.Candidate, tabu *TabuList) []scored {
	out := make([]scored, len(cands))
	var g errgroup.Group
	g.SetLimit(d.cfg.Workers)
	for i := range cands {
		g.Go(func() error {
			sol := cands[i].Solution
			if tabu.Contains(sol.Key()) || !d.eval.Feasible(sol) {
				return nil
			}
			if d.cfg.TimeWindows == TimeWindowsStrict && !d.eval.OnTime(sol) {
				return nil
			}
			out[i] = scored{distance: d.eval.TotalDistance(sol), admissible: true}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
