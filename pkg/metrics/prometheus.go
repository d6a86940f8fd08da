package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder backed by Prometheus.
// Collectors are registered on first use.
type PrometheusRecorder struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	candidatesEvaluated    *prometheus.CounterVec
	candidatesDisqualified *prometheus.CounterVec
	batchRuns              prometheus.Counter
	batchJobs              *prometheus.CounterVec
	notifications          *prometheus.CounterVec
	requestLatency         *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheus creates a Prometheus-backed recorder.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "dispatch" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "dispatch"
	}

	return &PrometheusRecorder{reg: reg, namespace: namespace}
}

func (p *PrometheusRecorder) ensureRegistered() {
	p.once.Do(func() {
		p.candidatesEvaluated = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "candidates_evaluated_total",
			Help:      "Total employees scored against a job, by scorer.",
		}, []string{"scorer"})

		p.candidatesDisqualified = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "candidates_disqualified_total",
			Help:      "Total scored employees that were disqualified, by scorer.",
		}, []string{"scorer"})

		p.batchRuns = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "batch",
			Name:      "runs_total",
			Help:      "Total batch dispatch runs.",
		})

		p.batchJobs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "batch",
			Name:      "jobs_total",
			Help:      "Jobs seen by batch dispatch by outcome (assigned,unmatched,skipped).",
		}, []string{"outcome"})

		p.notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Assignment emails by result (sent,failed).",
		}, []string{"result"})

		p.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds by route and status code.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
		}, []string{"route", "code"})

		p.reg.MustRegister(p.candidatesEvaluated)
		p.reg.MustRegister(p.candidatesDisqualified)
		p.reg.MustRegister(p.batchRuns)
		p.reg.MustRegister(p.batchJobs)
		p.reg.MustRegister(p.notifications)
		p.reg.MustRegister(p.requestLatency)
	})
}

// RecordCandidates adds to the evaluated and disqualified counters for the scorer.
func (p *PrometheusRecorder) RecordCandidates(scorer string, evaluated, disqualified int) {
	p.ensureRegistered()
	p.candidatesEvaluated.WithLabelValues(scorer).Add(float64(evaluated))
	p.candidatesDisqualified.WithLabelValues(scorer).Add(float64(disqualified))
}

// RecordBatch counts one run and its per-job outcomes.
func (p *PrometheusRecorder) RecordBatch(decisions, unmatched, skipped int) {
	p.ensureRegistered()
	p.batchRuns.Inc()
	p.batchJobs.WithLabelValues("assigned").Add(float64(decisions))
	p.batchJobs.WithLabelValues("unmatched").Add(float64(unmatched))
	p.batchJobs.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordNotification counts one email result.
func (p *PrometheusRecorder) RecordNotification(result string) {
	p.ensureRegistered()
	p.notifications.WithLabelValues(result).Inc()
}

// ObserveRequest observes request latency.
func (p *PrometheusRecorder) ObserveRequest(route string, status int, seconds float64) {
	p.ensureRegistered()
	p.requestLatency.WithLabelValues(route, strconv.Itoa(status)).Observe(seconds)
}
