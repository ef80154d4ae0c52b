// Package metrics holds the Prometheus collectors for the HTTP layer and the
// ledgers. A nil *Metrics is valid and records nothing, so services can be
// built without instrumentation in tests and CLI commands.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos_kemasan"

type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec

	OrdersCreated     prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	MaterialUsed      *prometheus.CounterVec
	MaterialRestocked *prometheus.CounterVec
	LowStockAlerts    prometheus.Counter
	ReportCache       *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Orders created.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_transitions_total",
			Help:      "Accepted order status transitions.",
		}, []string{"from", "to"}),
		MaterialUsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "materials",
			Name:      "used_quantity_total",
			Help:      "Material quantity consumed by production, in material units.",
		}, []string{"material"}),
		MaterialRestocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "materials",
			Name:      "restocked_quantity_total",
			Help:      "Material quantity added by restocks and opening stock.",
		}, []string{"material"}),
		LowStockAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "materials",
			Name:      "low_stock_alerts_total",
			Help:      "Low stock notifications raised.",
		}),
		ReportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "cache_lookups_total",
			Help:      "Report cache lookups by result.",
		}, []string{"report", "result"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.OrdersCreated,
		m.StatusTransitions,
		m.MaterialUsed,
		m.MaterialRestocked,
		m.LowStockAlerts,
		m.ReportCache,
	)
	return m
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
}

func (m *Metrics) StatusChanged(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) MaterialConsumed(material string, qty float64) {
	if m == nil {
		return
	}
	m.MaterialUsed.WithLabelValues(material).Add(qty)
}

func (m *Metrics) MaterialAdded(material string, qty float64) {
	if m == nil {
		return
	}
	m.MaterialRestocked.WithLabelValues(material).Add(qty)
}

func (m *Metrics) LowStock(n int) {
	if m == nil {
		return
	}
	m.LowStockAlerts.Add(float64(n))
}

func (m *Metrics) CacheLookup(report string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ReportCache.WithLabelValues(report, result).Inc()
}

// Middleware records duration and count per route template.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(labels...).Inc()
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
