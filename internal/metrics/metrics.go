package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wsn_dashboard"

// Poll outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds every collector of the dashboard on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	fetchDuration  *prometheus.HistogramVec
	pollsTotal     *prometheus.CounterVec
	sessionsActive *prometheus.GaugeVec
	sessionsEnded  *prometheus.CounterVec
	graphRenders   *prometheus.CounterVec
	streamClients  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_fetch_duration_seconds",
			Help:      "Latency of acquisition backend calls.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"op", "outcome"}),
		pollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_iterations_total",
			Help:      "Poll iterations by mode and outcome.",
		}, []string{"mode", "outcome"}),
		sessionsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "1 while a monitoring session of the mode is running.",
		}, []string{"mode"}),
		sessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Finished monitoring sessions by how they ended.",
		}, []string{"mode", "reason"}),
		graphRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_renders_total",
			Help:      "Chart renders by data source and outcome.",
		}, []string{"source", "outcome"}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "display_stream_clients",
			Help:      "Connected display websocket clients.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetchDuration,
		m.pollsTotal,
		m.sessionsActive,
		m.sessionsEnded,
		m.graphRenders,
		m.streamClients,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFetch records one backend call.
func (m *Metrics) ObserveFetch(op string, d time.Duration, err error) {
	m.fetchDuration.WithLabelValues(op, outcome(err)).Observe(d.Seconds())
}

func (m *Metrics) PollDone(mode string, err error) {
	m.pollsTotal.WithLabelValues(mode, outcome(err)).Inc()
}

func (m *Metrics) SessionStarted(mode string) {
	m.sessionsActive.WithLabelValues(mode).Set(1)
}

func (m *Metrics) SessionEnded(mode, reason string) {
	m.sessionsActive.WithLabelValues(mode).Set(0)
	m.sessionsEnded.WithLabelValues(mode, reason).Inc()
}

func (m *Metrics) GraphRendered(source string, err error) {
	m.graphRenders.WithLabelValues(source, outcome(err)).Inc()
}

func (m *Metrics) StreamConnected()    { m.streamClients.Inc() }
func (m *Metrics) StreamDisconnected() { m.streamClients.Dec() }

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
