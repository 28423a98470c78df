package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	storeOpDuration     *prometheus.HistogramVec
	storeErrorsTotal    *prometheus.CounterVec
	intentOutcomesTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (для тестов - отдельный реестр)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		storeOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "kv_store_operation_duration_seconds",
			Help:        "Key-value store operation latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"backend", "operation"}),
		storeErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "kv_store_errors_total",
			Help:        "Key-value store operation failures",
			ConstLabels: constLabels,
		}, []string{"backend", "operation"}),
		intentOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "intent_outcomes_total",
			Help:        "Handled intents by outcome",
			ConstLabels: constLabels,
		}, []string{"intent", "outcome"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.storeOpDuration,
		m.storeErrorsTotal,
		m.intentOutcomesTotal,
	)

	return m
}

// ObserveHTTPRequest учитывает один HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveStoreOperation учитывает одну операцию с хранилищем
func (m *Metrics) ObserveStoreOperation(backend, operation string, duration time.Duration, err error) {
	m.storeOpDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		m.storeErrorsTotal.WithLabelValues(backend, operation).Inc()
	}
}

// IncIntentOutcome учитывает результат обработки интента
func (m *Metrics) IncIntentOutcome(intent, outcome string) {
	m.intentOutcomesTotal.WithLabelValues(intent, outcome).Inc()
}
