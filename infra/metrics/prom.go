package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/vrptw/core/metrics"
)

// PromConfig configures the Prometheus sink. When PushURL is set the metrics
// are kept on a private registry and pushed to the Pushgateway on Flush.
type PromConfig struct {
	PushURL string `json:"push_url"`
	Job     string `json:"job"`
}

// PromSink records search progress in Prometheus metrics.
type PromSink struct {
	iterations   prometheus.Counter
	improvements prometheus.Counter
	current      prometheus.Gauge
	best         prometheus.Gauge
	candidates   *prometheus.GaugeVec
	duration     prometheus.Histogram
	runs         *prometheus.CounterVec
	unassigned   prometheus.Gauge
	runDuration  prometheus.Gauge

	pusher *push.Pusher
}

var (
	_ coremetrics.SearchSink = (*PromSink)(nil)
	_ coremetrics.Flusher    = (*PromSink)(nil)
)

// NewPromSink registers the metrics on the default registerer, or on a
// private registry pushed to cfg.PushURL.
func NewPromSink(cfg PromConfig) (*PromSink, error) {
	if cfg.PushURL == "" {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	}
	if cfg.Job == "" {
		cfg.Job = "vrptw"
	}
	reg := prometheus.NewRegistry()
	s, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		return nil, err
	}
	s.pusher = push.New(cfg.PushURL, cfg.Job).Gatherer(reg)
	return s, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vrptw_search_iterations_total",
			Help: "Total number of completed tabu search rounds",
		}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vrptw_search_improvements_total",
			Help: "Rounds that improved the best known distance",
		}),
		current: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrptw_search_current_distance",
			Help: "Total distance of the current solution",
		}),
		best: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrptw_search_best_distance",
			Help: "Total distance of the best solution found",
		}),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vrptw_search_candidates",
			Help: "Neighbourhood size of the last round",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vrptw_search_iteration_duration_seconds",
			Help:    "Time spent generating and scoring one neighbourhood",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vrptw_runs_total",
			Help: "Finished runs by termination reason",
		}, []string{"reason"}),
		unassigned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrptw_run_unassigned_customers",
			Help: "Customers left out of the last run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrptw_run_duration_seconds",
			Help: "Wall time of the last search",
		}),
	}
	var err error
	if s.iterations, err = register(reg, s.iterations); err != nil {
		return nil, err
	}
	if s.improvements, err = register(reg, s.improvements); err != nil {
		return nil, err
	}
	if s.current, err = register(reg, s.current); err != nil {
		return nil, err
	}
	if s.best, err = register(reg, s.best); err != nil {
		return nil, err
	}
	if s.candidates, err = register(reg, s.candidates); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	if s.unassigned, err = register(reg, s.unassigned); err != nil {
		return nil, err
	}
	if s.runDuration, err = register(reg, s.runDuration); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the collector already registered under the same
// descriptor, if any.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordIteration updates the search gauges and counters.
func (s *PromSink) RecordIteration(ev coremetrics.IterationEvent) error {
	s.iterations.Inc()
	if ev.Improved {
		s.improvements.Inc()
	}
	s.current.Set(float64(ev.CurrentDistance))
	s.best.Set(float64(ev.BestDistance))
	s.candidates.WithLabelValues("generated").Set(float64(ev.Candidates))
	s.candidates.WithLabelValues("admissible").Set(float64(ev.Admissible))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordRun counts the run and stores its summary.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.WithLabelValues(ev.Reason).Inc()
	s.best.Set(float64(ev.BestDistance))
	s.unassigned.Set(float64(ev.Unassigned))
	s.runDuration.Set(ev.Duration.Seconds())
	return nil
}

// Flush pushes the metrics to the Pushgateway when one is configured.
func (s *PromSink) Flush(ctx context.Context) error {
	if s.pusher == nil {
		return nil
	}
	if err := s.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("pushgateway: %w", err)
	}
	return nil
}
