// Package metrics defines the sinks that observe a search run. The tabu
// driver emits one IterationEvent per round and a RunEvent once it stops.
// Concrete sinks (Prometheus, InfluxDB) live in infra/metrics and register
// themselves with RegisterSearchSink; NewSearchSink builds them from the
// metrics.sinks configuration and wraps several in a MultiSink.
package metrics
