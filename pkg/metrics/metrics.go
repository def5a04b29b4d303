package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-коллекторы сервиса
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	BookingsCreated      *prometheus.CounterVec
	BookingsCancelled    *prometheus.CounterVec
	PaymentsConfirmed    prometheus.Counter
	NotificationFailures *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created, by booking type",
			ConstLabels: labels,
		}, []string{"booking_type"}),

		BookingsCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled, by booking type",
			ConstLabels: labels,
		}, []string{"booking_type"}),

		PaymentsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payments_confirmed_total",
			Help:        "Total number of successfully confirmed checkout sessions",
			ConstLabels: labels,
		}),

		NotificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Total number of failed notification dispatches, by template",
			ConstLabels: labels,
		}, []string{"template"}),
	}
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated(bookingType string) {
	m.BookingsCreated.WithLabelValues(bookingType).Inc()
}

// IncBookingCancelled увеличивает счетчик отмен
func (m *Metrics) IncBookingCancelled(bookingType string) {
	m.BookingsCancelled.WithLabelValues(bookingType).Inc()
}

// IncPaymentConfirmed увеличивает счетчик подтвержденных платежей
func (m *Metrics) IncPaymentConfirmed() {
	m.PaymentsConfirmed.Inc()
}

// IncNotificationFailure увеличивает счетчик сбоев рассылки
func (m *Metrics) IncNotificationFailure(template string) {
	m.NotificationFailures.WithLabelValues(template).Inc()
}
