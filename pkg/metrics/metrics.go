package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ferreteria"

// Metrics holds the HTTP and business counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	payments       *prometheus.CounterVec
	conversions    *prometheus.CounterVec
	orders         *prometheus.CounterVec
	ratesRefreshed prometheus.Counter
	gatherer       prometheus.Gatherer
}

// New registers every collector on reg. gatherer backs the /metrics handler.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_transactions_total",
			Help:      "Payment transactions by resulting status.",
		}, []string{"status"}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "currency_conversions_total",
			Help:      "Currency conversions by pair and result.",
		}, []string{"pair", "result"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_order_transitions_total",
			Help:      "Branch transfer order status changes.",
		}, []string{"status"}),
		ratesRefreshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "currency_rates_refreshed_total",
			Help:      "Rate rows touched by refresh runs.",
		}),
		gatherer: gatherer,
	}
	reg.MustRegister(m.requests, m.duration, m.payments, m.conversions, m.orders, m.ratesRefreshed)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncPayment(status string) {
	if m == nil || m.payments == nil {
		return
	}
	m.payments.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *Metrics) IncConversion(pair string, ok bool) {
	if m == nil || m.conversions == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.conversions.WithLabelValues(normalizeLabel(pair), result).Inc()
}

func (m *Metrics) IncOrderTransition(status string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *Metrics) AddRatesRefreshed(n int) {
	if m == nil || m.ratesRefreshed == nil {
		return
	}
	m.ratesRefreshed.Add(float64(n))
}

// Handler serves the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
