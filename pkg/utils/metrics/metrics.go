package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "airisk"

// Recorder owns a private registry so that tests can create as many
// recorders as they need without colliding on the global registry.
type Recorder struct {
	registry       *prometheus.Registry
	scored         *prometheus.CounterVec
	stored         prometheus.Counter
	httpRequests   *prometheus.CounterVec
	rejectedScores prometheus.Counter
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		scored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_scored_total",
			Help:      "Number of questionnaires scored, by risk tier.",
		}, []string{"tier"}),
		stored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_stored_total",
			Help:      "Number of assessments persisted.",
		}),
		rejectedScores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_rejected_total",
			Help:      "Number of questionnaires rejected as incomplete.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),
	}

	reg.MustRegister(
		r.scored,
		r.stored,
		r.rejectedScores,
		r.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Scored counts one scored questionnaire. A nil recorder is a no-op.
func (r *Recorder) Scored(tier string) {
	if r == nil {
		return
	}
	r.scored.WithLabelValues(tier).Inc()
}

func (r *Recorder) Rejected() {
	if r == nil {
		return
	}
	r.rejectedScores.Inc()
}

func (r *Recorder) Stored() {
	if r == nil {
		return
	}
	r.stored.Inc()
}

func (r *Recorder) HTTPRequest(method string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
