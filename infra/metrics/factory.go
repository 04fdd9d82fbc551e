package metrics

import (
	"github.com/kilianp07/vrptw/core/factory"
	coremetrics "github.com/kilianp07/vrptw/core/metrics"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterSearchSink("nop", func(map[string]any) (coremetrics.SearchSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterSearchSink("prometheus", func(conf map[string]any) (coremetrics.SearchSink, error) {
		var c PromConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		s, err := NewPromSink(c)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	_ = coremetrics.RegisterSearchSink("influx", func(conf map[string]any) (coremetrics.SearchSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})
}
