// Package o11y exports the planner's search telemetry to Prometheus (via a
// Pushgateway, since per-agent searches are short-lived background tasks
// rather than a long-running scrape target) and, optionally, to InfluxDB
// for longer-term trend storage.
package o11y

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// MetricManager caches per-label-combination Gauges over a single GaugeVec
// so callers can fetch-or-create a gauge without re-registering it.
type MetricManager struct {
	labelNames []string
	gauges     *prometheus.GaugeVec
	metrics    map[string]prometheus.Gauge
	mu         sync.Mutex
}

// NewMetricManager builds a MetricManager over a new GaugeVec.
func NewMetricManager(name, help string, labelNames []string) *MetricManager {
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labelNames,
	)
	return &MetricManager{
		gauges:     g,
		labelNames: labelNames,
		metrics:    make(map[string]prometheus.Gauge),
	}
}

func isUnorderedEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Gauge returns the Gauge for labelValues, creating and registering it with
// onCreate on first use.
func (m *MetricManager) Gauge(labelValues map[string]string, onCreate func(prometheus.Collector)) prometheus.Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(labelValues))
	for k := range labelValues {
		keys = append(keys, k)
	}
	if !isUnorderedEqual(keys, m.labelNames) {
		log.Fatal("o11y: labelNames do not match labelValues")
	}

	key := m.key(labelValues)
	if gauge, exists := m.metrics[key]; exists {
		return gauge
	}

	gauge := m.gauges.With(labelValues)
	m.metrics[key] = gauge
	if onCreate != nil {
		onCreate(gauge)
	}
	return gauge
}

func (m *MetricManager) key(labelValues map[string]string) string {
	values := make([]string, 0, len(labelValues))
	for _, v := range labelValues {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, "|")
}

// Sink is the planner's telemetry exporter. Build it with NewSink; the zero
// value has no collectors and is not usable. A Sink built with an empty
// Pushgateway URL still updates its Prometheus collectors in-process;
// pushing and RecordPoint are no-ops until NewSink/ConfigureInflux are given
// real endpoints.
type Sink struct {
	jobName string
	pusher  *push.Pusher

	searchDuration *MetricManager
	outcomes       *prometheus.CounterVec
	slowSearches   *prometheus.CounterVec

	influxURL, influxToken, influxOrg, influxBucket string
}

// NewSink builds a Sink that pushes to the given Pushgateway URL under
// jobName. pushgatewayURL may be empty to disable pushing while still
// updating the in-process collectors.
func NewSink(pushgatewayURL, jobName string) *Sink {
	s := &Sink{
		jobName:        jobName,
		searchDuration: NewMetricManager("goap_search_duration_seconds", "Planner search wall-clock duration", []string{"agent", "goal"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goap_search_outcomes_total",
			Help: "Planner search outcomes by agent, goal, and result",
		}, []string{"agent", "goal", "result"}),
		slowSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goap_slow_searches_total",
			Help: "Searches that exceeded the configured soft wall-clock budget",
		}, []string{"agent"}),
	}
	if pushgatewayURL != "" {
		s.pusher = push.New(pushgatewayURL, jobName).Collector(s.outcomes).Collector(s.slowSearches)
	}
	return s
}

// ConfigureInflux points RecordPoint at an InfluxDB bucket for longer-term
// trend storage of planner telemetry.
func (s *Sink) ConfigureInflux(url, token, org, bucket string) {
	s.influxURL, s.influxToken, s.influxOrg, s.influxBucket = url, token, org, bucket
}

// RecordSearch records one completed search's outcome, labelled by agent,
// goal name and result, and its duration, labelled by agent and goal name.
// planLength is not recorded.
func (s *Sink) RecordSearch(agentID, goalName string, found bool, planLength int, d time.Duration) {
	result := "found"
	if !found {
		result = "no_plan"
	}
	s.outcomes.WithLabelValues(agentID, goalName, result).Inc()
	s.searchDuration.Gauge(map[string]string{"agent": agentID, "goal": goalName}, func(c prometheus.Collector) {
		if s.pusher != nil {
			s.pusher.Collector(c)
		}
	}).Set(d.Seconds())
	s.push()
}

// RecordSlowSearch records a search that exceeded the soft wall-clock
// budget (§5 Timeouts, §7 error kind 2), counted per agent; d and
// planLength are not recorded.
func (s *Sink) RecordSlowSearch(agentID string, d time.Duration, planLength int) {
	s.slowSearches.WithLabelValues(agentID).Inc()
	s.push()
}

func (s *Sink) push() {
	if s.pusher == nil {
		return
	}
	go func() {
		if err := s.pusher.Push(); err != nil {
			log.Println("o11y: error pushing planner metrics:", err)
		}
	}()
}

// RecordPoint writes a single point to the configured InfluxDB bucket. It
// is a no-op until ConfigureInflux has been called.
func (s *Sink) RecordPoint(ctx context.Context, name string, tags map[string]string, fields map[string]interface{}) error {
	if s.influxURL == "" {
		return nil
	}
	client := influxdb2.NewClient(s.influxURL, s.influxToken)
	defer client.Close()
	writeAPI := client.WriteAPIBlocking(s.influxOrg, s.influxBucket)
	point := write.NewPoint(name, tags, fields, time.Now())
	return writeAPI.WritePoint(ctx, point)
}
