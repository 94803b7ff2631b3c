package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	Registry *prometheus.Registry

	// Reminder metrics
	RemindersSent      prometheus.Counter
	RemindersSkipped   prometheus.Counter
	ChannelFailures    *prometheus.CounterVec
	ChannelDeliveries  *prometheus.CounterVec
	DispatchLatency    prometheus.Histogram
	MedicationsOverdue prometheus.Gauge

	// Insight metrics
	InsightRequests  *prometheus.CounterVec
	InsightFallbacks prometheus.Counter

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// New creates all application metrics on a dedicated registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Total number of medications for which at least one reminder channel succeeded",
		}),
		RemindersSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_suppressed_total",
			Help:      "Total number of reminders suppressed because one was already sent today",
		}),
		ChannelFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_channel_failures_total",
			Help:      "Total number of failed reminder deliveries per channel",
		}, []string{"channel"}),
		ChannelDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_channel_deliveries_total",
			Help:      "Total number of successful reminder deliveries per channel",
		}, []string{"channel"}),
		DispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reminder_dispatch_duration_seconds",
			Help:      "Time spent in a single reminder dispatch pass",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		MedicationsOverdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "medications_overdue",
			Help:      "Number of overdue medications at the last evaluation",
		}),
		InsightRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_requests_total",
			Help:      "Total number of insight generations by kind",
		}, []string{"kind"}),
		InsightFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_fallbacks_total",
			Help:      "Total number of insights answered by the fallback generator after a failure",
		}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	m.Registry.MustRegister(
		m.RemindersSent,
		m.RemindersSkipped,
		m.ChannelFailures,
		m.ChannelDeliveries,
		m.DispatchLatency,
		m.MedicationsOverdue,
		m.InsightRequests,
		m.InsightFallbacks,
		m.DatabaseOperations,
		m.DatabaseLatency,
		m.HTTPRequests,
		m.HTTPLatency,
	)

	return m
}

// ObserveDB records the outcome of one store call.
func (m *Metrics) ObserveDB(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(operation, status).Inc()
	m.DatabaseLatency.WithLabelValues(operation).Observe(seconds)
}

// ObserveDelivery records one channel attempt.
func (m *Metrics) ObserveDelivery(channel string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.ChannelFailures.WithLabelValues(channel).Inc()
		return
	}
	m.ChannelDeliveries.WithLabelValues(channel).Inc()
}

// ObserveDispatch records one dispatch pass.
func (m *Metrics) ObserveDispatch(seconds float64, sent, suppressed int) {
	if m == nil {
		return
	}
	m.DispatchLatency.Observe(seconds)
	m.RemindersSent.Add(float64(sent))
	m.RemindersSkipped.Add(float64(suppressed))
}

func (m *Metrics) SetOverdue(n int) {
	if m == nil {
		return
	}
	m.MedicationsOverdue.Set(float64(n))
}

func (m *Metrics) ObserveInsight(kind string, fallback bool) {
	if m == nil {
		return
	}
	m.InsightRequests.WithLabelValues(kind).Inc()
	if fallback {
		m.InsightFallbacks.Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, path string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, path).Observe(seconds)
}
