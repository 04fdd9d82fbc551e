// Package report defines where finished plans go. Sinks are built from the
// report.sinks configuration through a factory registry; infra/report
// provides the console, file and MQTT implementations.
package report

import (
	"context"
	"errors"
	"io"

	"github.com/kilianp07/vrptw/core/factory"
	"github.com/kilianp07/vrptw/core/itinerary"
)

// Sink consumes a finished plan.
type Sink interface {
	Report(ctx context.Context, plan itinerary.Plan) error
}

// Config lists the sinks to build.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// NopSink discards plans.
type NopSink struct{}

func (NopSink) Report(context.Context, itinerary.Plan) error { return nil }

// MultiSink hands the plan to every sink and joins their errors.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// Report implements Sink.
func (m *MultiSink) Report(ctx context.Context, plan itinerary.Plan) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.Report(ctx, plan); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes the sinks implementing io.Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink adds a report sink factory identified by name.
func RegisterSink(name string, f factory.Factory[Sink]) error {
	return sinkRegistry.Register(name, f)
}

// NewSink creates a Sink from the provided configuration.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]Sink, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			// release connections opened by the sinks already built
			if cerr := NewMultiSink(sinks...).Close(); cerr != nil {
				return nil, errors.Join(err, cerr)
			}
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return NewMultiSink(sinks...), nil
}
