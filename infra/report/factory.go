package report

import (
	"github.com/kilianp07/vrptw/core/factory"
	corereport "github.com/kilianp07/vrptw/core/report"
	"github.com/kilianp07/vrptw/infra/mqtt"
)

// init registers built-in report sinks.
func init() {
	_ = corereport.RegisterSink("nop", func(map[string]any) (corereport.Sink, error) {
		return corereport.NopSink{}, nil
	})

	_ = corereport.RegisterSink("console", func(conf map[string]any) (corereport.Sink, error) {
		var c struct {
			Format string `json:"format"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewConsoleSink(nil, c.Format), nil
	})

	_ = corereport.RegisterSink("file", func(conf map[string]any) (corereport.Sink, error) {
		var c FileConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		s, err := NewFileSink(c)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	_ = corereport.RegisterSink("mqtt", func(conf map[string]any) (corereport.Sink, error) {
		var c struct {
			mqtt.Config `json:",squash"`
			TopicPrefix string `json:"topic_prefix"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		cli, err := mqtt.NewPahoClient(c.Config)
		if err != nil {
			return nil, err
		}
		return NewMQTTSink(cli, c.TopicPrefix), nil
	})
}
