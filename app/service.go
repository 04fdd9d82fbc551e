package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kilianp07/vrptw/config"
	"github.com/kilianp07/vrptw/core/construct"
	"github.com/kilianp07/vrptw/core/evaluate"
	"github.com/kilianp07/vrptw/core/factory"
	"github.com/kilianp07/vrptw/core/geometry"
	"github.com/kilianp07/vrptw/core/itinerary"
	coremetrics "github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/model"
	"github.com/kilianp07/vrptw/core/neighborhood"
	corereport "github.com/kilianp07/vrptw/core/report"
	"github.com/kilianp07/vrptw/core/search"
	"github.com/kilianp07/vrptw/infra/logger"
	_ "github.com/kilianp07/vrptw/infra/metrics"
	_ "github.com/kilianp07/vrptw/infra/report"
	"github.com/kilianp07/vrptw/infra/source"
)

// flushTimeout bounds the final metrics push.
const flushTimeout = 10 * time.Second

// Service solves one instance and hands the plan to the report sinks.
type Service struct {
	cfg     config.Config
	metrics coremetrics.SearchSink
	report  corereport.Sink
	log     logger.Logger
}

// New creates a Service from the configuration. Without report sinks the
// plan is printed to stdout.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	if err := logger.Configure(cfg.Log); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	sink, err := coremetrics.NewSearchSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	sinks := cfg.Report.Sinks
	if len(sinks) == 0 {
		sinks = []factory.ModuleConfig{{Type: "console"}}
	}
	rep, err := corereport.NewSink(sinks)
	if err != nil {
		return nil, fmt.Errorf("report sink: %w", err)
	}
	return &Service{cfg: *cfg, metrics: sink, report: rep, log: logger.New("service")}, nil
}

// Run loads the configured instance and solves it.
func (s *Service) Run(ctx context.Context) error {
	inst, err := source.Load(s.cfg.Instance)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	s.log.Infow("instance loaded", map[string]any{
		"instance":  inst.Name,
		"customers": len(inst.Customers),
		"vehicles":  inst.Fleet.Count,
	})
	_, err = s.Solve(ctx, inst)
	return err
}

// Solve runs construction and tabu search on inst, then reports the best
// plan. Customers left out by the construction only produce a warning.
func (s *Service) Solve(ctx context.Context, inst *model.Instance) (*itinerary.Plan, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	metric := geometry.NewMatrix(inst.Locations())
	est, err := construct.NewEstimator(s.cfg.Construct.ETA, metric)
	if err != nil {
		return nil, err
	}
	gen, err := neighborhood.New(s.cfg.Search.Neighborhood, s.cfg.Search.Seed)
	if err != nil {
		return nil, err
	}
	eval := evaluate.New(metric)
	driver, err := search.NewDriver(
		s.cfg.Search,
		construct.NewBuilder(est, logger.New("construct")),
		gen,
		eval,
		s.metrics,
		logger.New("search"),
	)
	if err != nil {
		return nil, err
	}

	res, err := driver.Run(ctx, inst)
	if err != nil && !errors.Is(err, model.ErrInfeasibleAssignment) {
		return nil, err
	}
	if err != nil {
		s.log.Warnf("partial plan: %v", err)
	}
	plan := itinerary.Build(res.RunID, res.Best, eval)
	plan.Instance = inst.Name
	if err := s.report.Report(ctx, plan); err != nil {
		return &plan, fmt.Errorf("report: %w", err)
	}
	s.log.Infow("plan reported", map[string]any{
		"run_id":         plan.RunID,
		"routes":         len(plan.Routes),
		"total_distance": plan.TotalDistance,
		"unassigned":     len(plan.Unassigned),
	})
	return &plan, nil
}

// Close flushes the metrics sinks and closes the report sinks.
func (s *Service) Close() error {
	var errs []error
	if f, ok := s.metrics.(coremetrics.Flusher); ok {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := f.Flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics flush: %w", err))
		}
	}
	if c, ok := s.report.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("report close: %w", err))
		}
	}
	return errors.Join(errs...)
}
