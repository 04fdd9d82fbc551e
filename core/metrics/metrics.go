package metrics

import (
	"context"
	"time"
)

// IterationEvent describes one round of the tabu search.
type IterationEvent struct {
	RunID      string
	Iteration  int
	Candidates int
	Admissible int
	// MeanDistance is the mean total distance of the admissible candidates.
	MeanDistance    float64
	CurrentDistance int
	BestDistance    int
	Improved        bool
	Duration        time.Duration
	Time            time.Time
}

// RunEvent summarises a finished run.
type RunEvent struct {
	RunID           string
	Instance        string
	Customers       int
	Vehicles        int
	Unassigned      int
	InitialDistance int
	BestDistance    int
	Iterations      int
	Reason          string
	Duration        time.Duration
	Time            time.Time
}

// SearchSink records search progress for observability purposes.
type SearchSink interface {
	RecordIteration(ev IterationEvent) error
	RecordRun(ev RunEvent) error
}

// Flusher is implemented by sinks that buffer or push their data at the end
// of a run.
type Flusher interface {
	Flush(ctx context.Context) error
}

// NopSink implements SearchSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordIteration(IterationEvent) error { return nil }
func (NopSink) RecordRun(RunEvent) error             { return nil }

// OrNop returns s, or NopSink when s is nil.
func OrNop(s SearchSink) SearchSink {
	if s == nil {
		return NopSink{}
	}
	return s
}
