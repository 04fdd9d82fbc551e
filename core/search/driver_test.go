package search

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/vrptw/core/construct"
	"github.com/kilianp07/vrptw/core/evaluate"
	"github.com/kilianp07/vrptw/core/geometry"
	"github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/model"
	"github.com/kilianp07/vrptw/core/neighborhood"
)

type recordingSink struct {
	iterations []metrics.IterationEvent
	runs       []metrics.RunEvent
}

func (r *recordingSink) RecordIteration(ev metrics.IterationEvent) error {
	r.iterations = append(r.iterations, ev)
	return nil
}

func (r *recordingSink) RecordRun(ev metrics.RunEvent) error {
	r.runs = append(r.runs, ev)
	return nil
}

func newDriver(t *testing.T, cfg Config, gen neighborhood.Generator, sink metrics.SearchSink) *Driver {
	t.Helper()
	cfg.SetDefaults()
	// the random instances share one wide window, which only the
	// cumulative estimator can chain
	est, err := construct.NewEstimator(construct.ETACumulative, nil)
	require.NoError(t, err)
	d, err := NewDriver(cfg, construct.NewBuilder(est, nil), gen, evaluate.New(nil), sink, nil)
	require.NoError(t, err)
	return d
}

func cust(id, x, y, latest int) *model.Customer {
	return &model.Customer{ID: id, Demand: 10, Window: model.TimeWindow{Latest: latest}, Location: geometry.Location{X: x, Y: y}}
}

// scenarioD has two full vehicles whose routes mix an east and a north
// customer. Swapping one customer between them shortens both routes.
func scenarioD(latest3 int) *model.Solution {
	c1, c2 := cust(1, 10, 0, 1000), cust(2, 0, 50, 1000)
	c3, c4 := cust(3, 0, 60, latest3), cust(4, 20, 0, 1000)
	v0 := model.NewVehicle(0, 20, geometry.Location{})
	v0.Append(c1)
	v0.Append(c2)
	v1 := model.NewVehicle(1, 20, geometry.Location{})
	v1.Append(c3)
	v1.Append(c4)
	return model.NewSolution([]*model.Vehicle{v0, v1})
}

func randomInstance(seed int64, n int) *model.Instance {
	r := rand.New(rand.NewSource(seed))
	in := &model.Instance{
		Name:  "random",
		Fleet: model.FleetSpec{Count: 5, Capacity: 50},
	}
	for i := 1; i <= n; i++ {
		in.Customers = append(in.Customers, &model.Customer{
			ID:              i,
			Demand:          1 + r.Intn(10),
			Window:          model.TimeWindow{Latest: 100000},
			ServiceDuration: r.Intn(5),
			Location:        geometry.Location{X: r.Intn(100), Y: r.Intn(100)},
		})
	}
	return in
}

func assertNonIncreasing(t *testing.T, history []int) {
	t.Helper()
	for i := 1; i < len(history); i++ {
		assert.LessOrEqual(t, history[i], history[i-1], "history %v", history)
	}
}

func TestScenarioDTabuPreventsReversal(t *testing.T) {
	initial := scenarioD(1000)
	d := newDriver(t, Config{MaxIterations: 3, TabuCapacity: 1, Workers: 2}, neighborhood.Exhaustive{}, nil)

	var accepted, forbidden []model.Key
	d.OnAccept = func(_ int, c neighborhood.Candidate, tabu *TabuList) {
		assert.LessOrEqual(t, tabu.Len(), 1)
		assert.False(t, tabu.Contains(c.Solution.Key()))
		accepted = append(accepted, c.Solution.Key())
		forbidden = append(forbidden, tabu.Keys()...)
	}
	res := d.Search(context.Background(), initial)

	assert.Equal(t, 253, res.InitialDistance)
	assert.Equal(t, 160, res.BestDistance)
	assert.Equal(t, ReasonBudget, res.Reason)
	assert.Equal(t, 3, res.Iterations)
	require.Equal(t, []model.Key{"3,2|1,4", "4,2|1,3", "4,1|2,3"}, accepted)
	// after each round the memory holds the solution that was just left
	assert.Equal(t, []model.Key{"1,2|3,4", "3,2|1,4", "4,2|1,3"}, forbidden)

	seq := append([]model.Key{initial.Key()}, accepted...)
	for i := 2; i < len(seq); i++ {
		assert.NotEqual(t, seq[i-2], seq[i], "move %d reverses move %d", i, i-1)
	}
	assert.Equal(t, model.Key("1,2|3,4"), initial.Key(), "initial solution must not be modified")
	assert.Equal(t, []int{253, 160, 160, 160}, res.History)
	assert.Equal(t, StateTerminated, d.State())
}

func TestSearchAcceptsWorseMoves(t *testing.T) {
	d := newDriver(t, Config{MaxIterations: 2, TabuCapacity: 5}, neighborhood.Exhaustive{}, nil)
	sink := &recordingSink{}
	d.sink = sink
	res := d.Search(context.Background(), scenarioD(1000))

	require.Len(t, sink.iterations, 2)
	assert.Equal(t, 160, sink.iterations[0].CurrentDistance)
	assert.True(t, sink.iterations[0].Improved)
	// every remaining neighbour is longer, the search still moves
	assert.Equal(t, 253, sink.iterations[1].CurrentDistance)
	assert.False(t, sink.iterations[1].Improved)
	assert.Equal(t, 160, sink.iterations[1].BestDistance)
	assert.Equal(t, 160, res.BestDistance)
	assert.Equal(t, model.Key("3,2|1,4"), res.Best.Key())
	assert.Equal(t, 4, sink.iterations[0].Candidates)
	assert.InDelta(t, (160+253+253+160)/4.0, sink.iterations[0].MeanDistance, 1e-9)
}

func TestStrictTimeWindowsRejectLateCandidates(t *testing.T) {
	strict := newDriver(t, Config{MaxIterations: 5, TabuCapacity: 5}, neighborhood.Exhaustive{}, nil)
	res := strict.Search(context.Background(), scenarioD(59))
	assert.Equal(t, ReasonEmptyNeighborhood, res.Reason)
	assert.ErrorIs(t, res.Reason.Err(), model.ErrEmptyNeighborhood)
	assert.Equal(t, 0, res.Iterations)
	assert.Equal(t, 253, res.BestDistance)

	relaxed := newDriver(t, Config{MaxIterations: 5, TabuCapacity: 5, TimeWindows: TimeWindowsRelaxed}, neighborhood.Exhaustive{}, nil)
	res = relaxed.Search(context.Background(), scenarioD(59))
	assert.Equal(t, 160, res.BestDistance)
	assert.NoError(t, res.Reason.Err())
}

func TestEmptyNeighborhoodStopsEarly(t *testing.T) {
	v := model.NewVehicle(0, 50, geometry.Location{})
	v.Append(cust(1, 10, 0, 1000))
	v.Append(cust(2, 0, 10, 1000))
	d := newDriver(t, Config{MaxIterations: 10, TabuCapacity: 3}, neighborhood.Exhaustive{}, nil)

	res := d.Search(context.Background(), model.NewSolution([]*model.Vehicle{v}))
	assert.Equal(t, ReasonEmptyNeighborhood, res.Reason)
	assert.Equal(t, 0, res.Iterations)
	assert.Equal(t, []int{res.InitialDistance}, res.History)
	assert.Same(t, v, res.Best.Vehicles[0])
}

func TestSearchStopsOnContext(t *testing.T) {
	d := newDriver(t, Config{MaxIterations: 10, TabuCapacity: 3}, neighborhood.Exhaustive{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := d.Search(ctx, scenarioD(1000))
	assert.Equal(t, ReasonCancelled, res.Reason)
	assert.Equal(t, 0, res.Iterations)
	assert.Equal(t, 253, res.BestDistance)

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	res = d.Search(ctx, scenarioD(1000))
	assert.Equal(t, ReasonDeadline, res.Reason)
}

func TestRunBestHistoryNonIncreasing(t *testing.T) {
	sink := &recordingSink{}
	d := newDriver(t, Config{MaxIterations: 30, TabuCapacity: 10}, neighborhood.Exhaustive{}, sink)
	in := randomInstance(7, 15)

	var loads []int
	d.OnAccept = func(_ int, c neighborhood.Candidate, _ *TabuList) {
		for _, v := range c.Solution.Vehicles {
			loads = append(loads, v.Load())
			assert.LessOrEqual(t, v.Load(), v.Capacity)
		}
	}
	res, err := d.Run(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, res.Best)
	assert.NotEmpty(t, loads)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "random", res.Instance)
	assert.Equal(t, len(res.History), res.Iterations+1)
	assertNonIncreasing(t, res.History)
	assert.LessOrEqual(t, res.BestDistance, res.InitialDistance)
	assert.Equal(t, res.BestDistance, evaluate.New(nil).TotalDistance(res.Best))
	assert.Equal(t, 15, res.Best.Assigned())

	require.Len(t, sink.runs, 1)
	assert.Equal(t, res.RunID, sink.runs[0].RunID)
	assert.Equal(t, res.BestDistance, sink.runs[0].BestDistance)
	assert.Equal(t, 15, sink.runs[0].Customers)
	assert.Len(t, sink.iterations, res.Iterations)
}

func TestParallelScoringIsDeterministic(t *testing.T) {
	in := randomInstance(11, 12)
	var keys []model.Key
	var dists []int
	for _, workers := range []int{1, 2, 8} {
		d := newDriver(t, Config{MaxIterations: 15, TabuCapacity: 5, Workers: workers}, neighborhood.Exhaustive{}, nil)
		res, err := d.Run(context.Background(), in)
		require.NoError(t, err)
		keys = append(keys, res.Best.Key())
		dists = append(dists, res.BestDistance)
	}
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
	assert.Equal(t, dists[0], dists[2])
}

func TestRandomPairRunIsReproducible(t *testing.T) {
	in := randomInstance(3, 10)
	run := func() *Result {
		d := newDriver(t, Config{MaxIterations: 20, TabuCapacity: 5}, neighborhood.NewRandomPair(99), nil)
		res, err := d.Run(context.Background(), in)
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a.Best.Key(), b.Best.Key())
	assert.Equal(t, a.History, b.History)
	assertNonIncreasing(t, a.History)
}

func TestRunPartialAssignment(t *testing.T) {
	in := &model.Instance{
		Fleet: model.FleetSpec{Count: 2, Capacity: 50},
		Customers: []*model.Customer{
			{ID: 1, Demand: 5, Window: model.TimeWindow{Latest: 100}, Location: geometry.Location{X: 10}},
			{ID: 2, Demand: 5, Window: model.TimeWindow{Latest: 50}, Location: geometry.Location{X: 100}},
		},
	}
	d := newDriver(t, Config{MaxIterations: 5, TabuCapacity: 2}, neighborhood.Exhaustive{}, nil)
	res, err := d.Run(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInfeasibleAssignment))
	require.NotNil(t, res)
	assert.Equal(t, []int{2}, res.Unassigned)
	assert.Equal(t, 1, res.Best.Assigned())
}

func TestRunRejectsInvalidInstance(t *testing.T) {
	d := newDriver(t, Config{}, neighborhood.Exhaustive{}, nil)
	res, err := d.Run(context.Background(), &model.Instance{Fleet: model.FleetSpec{Count: 0, Capacity: 10}})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
	assert.Equal(t, StateInitial, d.State())
}

func TestNewDriverValidation(t *testing.T) {
	_, err := NewDriver(Config{MaxIterations: 1, TabuCapacity: 1}, nil, neighborhood.Exhaustive{}, evaluate.New(nil), nil, nil)
	assert.Error(t, err)

	d, err := NewDriver(Config{MaxIterations: 3, TabuCapacity: 1}, construct.NewBuilder(nil, nil), neighborhood.Exhaustive{}, evaluate.New(nil), nil, nil)
	require.NoError(t, err, "unset time_windows and workers take their defaults")
	assert.Equal(t, TimeWindowsStrict, d.cfg.TimeWindows)
	assert.Equal(t, 1, d.cfg.Workers)

	_, err = NewDriver(Config{MaxIterations: -1, TabuCapacity: 1, TimeWindows: TimeWindowsStrict}, construct.NewBuilder(nil, nil), neighborhood.Exhaustive{}, evaluate.Evaluator{}, nil, nil)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}
