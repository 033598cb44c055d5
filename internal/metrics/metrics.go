package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics держит собственный registry, чтобы тесты могли создавать несколько экземпляров
type Metrics struct {
	registry *prometheus.Registry

	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	OrdersCreated *prometheus.CounterVec
	StatusChanges *prometheus.CounterVec
	OwnerAlerts   *prometheus.CounterVec
	Reminders     prometheus.Counter
}

func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: service,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: service,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_created_total",
			Help:      "Orders created, by payment method.",
		}, []string{"payment_method"}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "order_status_changes_total",
			Help:      "Order status changes, by target status.",
		}, []string{"status"}),
		OwnerAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "owner_alerts_total",
			Help:      "Owner alert deliveries, by channel and result.",
		}, []string{"channel", "result"}),
		Reminders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "pending_reminders_total",
			Help:      "Stale pending orders reported to the owner.",
		}),
	}

	reg.MustRegister(
		m.Requests, m.LatencyMS, m.OrdersCreated, m.StatusChanges, m.OwnerAlerts, m.Reminders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware пишет счётчик и латентность по шаблону маршрута, а не по сырому пути
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}

func (m *Metrics) OrderCreated(paymentMethod string) {
	m.OrdersCreated.WithLabelValues(paymentMethod).Inc()
}

func (m *Metrics) OrderStatusChanged(to string) {
	m.StatusChanges.WithLabelValues(to).Inc()
}

func (m *Metrics) OwnerAlert(channel string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.OwnerAlerts.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) PendingReminders(n int) {
	m.Reminders.Add(float64(n))
}
