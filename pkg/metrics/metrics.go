// Package metrics provides the Prometheus registry reference for the PokeAPI
// client. All metrics are defined in their respective packages (client,
// inflight) to maintain modularity and avoid circular dependencies.
//
// This package documents the available metrics and reads them back for
// reporting.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Prefix is shared by every metric of the client.
const Prefix = "pokeapi_"

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer reads back what Registry collected.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// Sample is one metric family reduced to a single number: the sum of all
// counters or gauges, or the total observation count of a histogram.
type Sample struct {
	Name  string
	Value float64
}

// Snapshot gathers the client's metric families, sorted by name. Families
// that never recorded anything are left out.
func Snapshot() ([]Sample, error) {
	return snapshot(Gatherer)
}

func snapshot(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), Prefix) {
			continue
		}

		var total float64
		for _, m := range mf.GetMetric() {
			total += value(mf.GetType(), m)
		}
		if total == 0 {
			continue
		}
		samples = append(samples, Sample{Name: mf.GetName(), Value: total})
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}

func value(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return 0
	}
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - pokeapi_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - pokeapi_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - pokeapi_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - pokeapi_retries_total{error_class} (Counter): Retry attempts by error class
//   - pokeapi_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - pokeapi_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Resolver Metrics (pkg/client):
//   - pokeapi_resolver_operations_total{operation, outcome} (Counter): Operations by outcome
//     (success, shared, error)
//
// In-flight Metrics (pkg/inflight):
//   - pokeapi_inflight_started_total (Counter): Fetches that reached the transport
//   - pokeapi_inflight_shared_total (Counter): Callers served by a pending fetch
//   - pokeapi_inflight_detached_total (Counter): Callers that stopped waiting
//   - pokeapi_inflight_aborted_total (Counter): Fetches cancelled after the last caller left
//   - pokeapi_inflight_pending (Gauge): Fetches currently pending
//
// Example Prometheus Queries:
//
//   # De-duplication Rate
//   sum(rate(pokeapi_inflight_shared_total[5m])) /
//   (sum(rate(pokeapi_inflight_shared_total[5m])) + sum(rate(pokeapi_inflight_started_total[5m])))
//
//   # Not Found Rate
//   rate(pokeapi_requests_total{status="404"}[5m]) / rate(pokeapi_requests_total[5m])
//
//   # Request Error Rate
//   rate(pokeapi_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pokeapi_request_duration_seconds_bucket[5m]))
