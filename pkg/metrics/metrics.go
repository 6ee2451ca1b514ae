// Package metrics собирает Prometheus-метрики сервиса
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
// Все методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge

	BookingsConfirmed *prometheus.CounterVec
	WebhookEvents     *prometheus.CounterVec
	FetchDegradations *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation", "status"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}),
		DBInUse: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}),
		DBIdle: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: labels,
		}),
		BookingsConfirmed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_confirmed_total",
			Help:        "Appointments created through multi-booking confirmation",
			ConstLabels: labels,
		}, []string{"mode"}),
		WebhookEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_webhook_events_total",
			Help:        "Payment webhook events by type and resulting transaction status",
			ConstLabels: labels,
		}, []string{"type", "status"}),
		FetchDegradations: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "fetch_degradations_total",
			Help:        "Store reads that failed and degraded to an empty result",
			ConstLabels: labels,
		}, []string{"source"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный SQL запрос
func (m *Metrics) ObserveDBQuery(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет показатели connection pool
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(open))
	m.DBInUse.Set(float64(inUse))
	m.DBIdle.Set(float64(idle))
}

// IncBookingsConfirmed увеличивает счетчик созданных записей
func (m *Metrics) IncBookingsConfirmed(mode string, n int) {
	if m == nil {
		return
	}
	m.BookingsConfirmed.WithLabelValues(mode).Add(float64(n))
}

// IncWebhookEvent увеличивает счетчик событий вебхука
func (m *Metrics) IncWebhookEvent(eventType, status string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(eventType, status).Inc()
}

// IncFetchDegradation увеличивает счетчик деградаций чтения
func (m *Metrics) IncFetchDegradation(source string) {
	if m == nil {
		return
	}
	m.FetchDegradations.WithLabelValues(source).Inc()
}
