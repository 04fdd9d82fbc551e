package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kilianp07/vrptw/core/itinerary"
	coremqtt "github.com/kilianp07/vrptw/core/mqtt"
	corereport "github.com/kilianp07/vrptw/core/report"
)

// MQTTSink publishes the plan as JSON on <prefix>/<run id>/plan.
type MQTTSink struct {
	pub    coremqtt.Publisher
	prefix string
}

var _ corereport.Sink = (*MQTTSink)(nil)

// NewMQTTSink wraps pub. An empty prefix defaults to "vrptw".
func NewMQTTSink(pub coremqtt.Publisher, prefix string) *MQTTSink {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = "vrptw"
	}
	return &MQTTSink{pub: pub, prefix: prefix}
}

// Topic returns the topic used for a run.
func (s *MQTTSink) Topic(runID string) string {
	return fmt.Sprintf("%s/%s/plan", s.prefix, runID)
}

// Report implements corereport.Sink.
func (s *MQTTSink) Report(ctx context.Context, plan itinerary.Plan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("mqtt sink: %w", err)
	}
	if err := s.pub.Publish(ctx, s.Topic(plan.RunID), payload); err != nil {
		return fmt.Errorf("mqtt sink: %w", err)
	}
	return nil
}

// Close disconnects the underlying client when it supports it.
func (s *MQTTSink) Close() error {
	if d, ok := s.pub.(interface{ Disconnect() }); ok {
		d.Disconnect()
	}
	return nil
}
