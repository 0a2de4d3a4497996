// Package metrics собирает Prometheus-метрики мастера бронирования.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RESTCallsTotal      *prometheus.CounterVec
	RESTCallDuration    *prometheus.HistogramVec
	StepTransitions     *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
}

// New создает и регистрирует метрики. reg == nil означает prometheus.DefaultRegisterer.
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RESTCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_api_calls_total",
			Help:        "Total number of calls to the booking REST API",
			ConstLabels: constLabels,
		}, []string{"endpoint", "status"}),
		RESTCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "booking_api_call_duration_seconds",
			Help:        "Booking REST API call latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint"}),
		StepTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_step_transitions_total",
			Help:        "Wizard step switches",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "wizard_active_sessions",
			Help:        "Wizard sessions held in memory",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RESTCallsTotal,
		m.RESTCallDuration,
		m.StepTransitions,
		m.ActiveSessions,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveRESTCall учитывает вызов REST API бэкенда. Нулевой status означает транспортную ошибку.
func (m *Metrics) ObserveRESTCall(endpoint string, status int, d time.Duration) {
	m.RESTCallsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.RESTCallDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveStepTransition учитывает переключение шага мастера
func (m *Metrics) ObserveStepTransition(from, to string) {
	if from == "" {
		from = "none"
	}
	m.StepTransitions.WithLabelValues(from, to).Inc()
}

// SessionOpened увеличивает число активных сессий
func (m *Metrics) SessionOpened() {
	m.ActiveSessions.Inc()
}

// SessionClosed уменьшает число активных сессий
func (m *Metrics) SessionClosed() {
	m.ActiveSessions.Dec()
}
