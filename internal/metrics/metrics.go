package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification recipients
const (
	RecipientAdmin    = "admin"
	RecipientSalesRep = "sales_rep"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		},
		[]string{"method", "endpoint"},
	)

	// Database metrics
	dbConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		},
	)

	dbConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Intake metrics
	inquiriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_inquiries_created_total",
			Help: "Total number of inquiries stored from the intake form",
		},
	)

	customerMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_customer_matches_total",
			Help: "Intake submissions by whether the email matched an existing customer",
		},
		[]string{"matched"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_total",
			Help: "Total number of intake notification emails",
		},
		[]string{"recipient", "status"}, // admin|sales_rep, sent|failed
	)

	intakeFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_failures_total",
			Help: "Intake submissions that stopped on an error, by error kind",
		},
		[]string{"kind"},
	)
)

// GinMiddleware records request count, latency and response size per route
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint itself
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			httpResponseSize.WithLabelValues(method, endpoint).Observe(float64(size))
		}
	}
}

// RecordInquiryCreated records a stored inquiry
func RecordInquiryCreated() {
	inquiriesCreatedTotal.Inc()
}

// RecordCustomerMatch records whether a submission matched a customer
func RecordCustomerMatch(matched bool) {
	customerMatchesTotal.WithLabelValues(strconv.FormatBool(matched)).Inc()
}

// RecordNotification records a notification attempt for recipient
func RecordNotification(recipient string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	notificationsTotal.WithLabelValues(recipient, status).Inc()
}

// RecordIntakeFailure records a submission that stopped with an error of the given kind
func RecordIntakeFailure(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	intakeFailuresTotal.WithLabelValues(kind).Inc()
}

// UpdateDBConnections updates database connection metrics
func UpdateDBConnections(open, idle int) {
	dbConnectionsOpen.Set(float64(open))
	dbConnectionsIdle.Set(float64(idle))
}
