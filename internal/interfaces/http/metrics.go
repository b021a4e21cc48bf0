package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics registra contadores e histogramas de las peticiones HTTP.
// Cada instancia tiene su propio registry para poder construir varias apps en tests.
type HTTPMetrics struct {
	service  string
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	category *prometheus.CounterVec
}

// NewHTTPMetrics crea el colector de métricas para el servicio.
func NewHTTPMetrics(service string) *HTTPMetrics {
	m := &HTTPMetrics{
		service:  service,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"service", "method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		category: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_category_total",
				Help: "Respuestas por categoría de status (2xx, 4xx, 5xx)",
			},
			[]string{"service", "category"},
		),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.category,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware mide cada petición. El path es el de la ruta registrada (/api/sites/:id),
// no el de la URL, para no disparar la cardinalidad.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		method := c.Method()
		path := c.Route().Path
		statusStr := strconv.Itoa(status)

		m.requests.WithLabelValues(m.service, method, path, statusStr).Inc()
		m.duration.WithLabelValues(m.service, method, path, statusStr).Observe(time.Since(start).Seconds())
		if cat := statusCategory(status); cat != "" {
			m.category.WithLabelValues(m.service, cat).Inc()
		}
		return err
	}
}

// Handler expone el registry en formato Prometheus.
func (m *HTTPMetrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}
