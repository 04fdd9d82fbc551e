package metrics_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	metrics "github.com/kilianp07/vrptw/core/metrics"
	inframetrics "github.com/kilianp07/vrptw/infra/metrics"
)

// pushRecorder stands in for a Pushgateway.
type pushRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (p *pushRecorder) handler(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.paths = append(p.paths, r.Method+" "+r.URL.Path)
	p.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

// Test decoding a prometheus and an unreachable influx sink from YAML.
func TestMetricsConfigDecodeYAML(t *testing.T) {
	rec := &pushRecorder{}
	gateway := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer gateway.Close()
	influx := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer influx.Close()

	data := `sinks:
  - type: prometheus
    conf:
      push_url: "` + gateway.URL + `"
      job: "decode-test"
  - type: influx
    conf:
      url: "` + influx.URL + `"
      token: "t"
      org: "o"
      bucket: "b"
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	s, err := metrics.NewSearchSink(cfg.Sinks)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	m, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if _, ok := m.Sinks[0].(*inframetrics.PromSink); !ok {
		t.Errorf("sink 0 = %T, want *PromSink", m.Sinks[0])
	}
	if _, ok := m.Sinks[1].(metrics.NopSink); !ok {
		t.Errorf("unhealthy influx should fall back to NopSink, got %T", m.Sinks[1])
	}

	if err := s.RecordIteration(metrics.IterationEvent{RunID: "r1", Iteration: 1, Candidates: 4, Admissible: 3, CurrentDistance: 160, BestDistance: 160, Improved: true}); err != nil {
		t.Fatalf("record iteration: %v", err)
	}
	if err := s.RecordRun(metrics.RunEvent{RunID: "r1", Instance: "decode", BestDistance: 160, Iterations: 1, Reason: "budget"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.paths) != 1 || rec.paths[0] != "PUT /metrics/job/decode-test" {
		t.Errorf("pushes = %v", rec.paths)
	}
}

// Test decoding from JSON with invalid sink type.
func TestMetricsConfigDecodeJSON_Invalid(t *testing.T) {
	data := `{"sinks":[{"type":"statsd","conf":{"addr":"localhost:8125"}}]}`
	var cfg metrics.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	_, err := metrics.NewSearchSink(cfg.Sinks)
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "prometheus") {
		t.Errorf("error should list the registered sinks: %v", err)
	}
}
