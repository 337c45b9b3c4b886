package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/scentalux/storefront/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter           prometheus.Counter
	RegisterCounter        prometheus.Counter
	AuthErrorsCounter      prometheus.Counter
	SessionTeardownCounter prometheus.Counter

	// Catalog metrics
	CatalogOperationsCounter prometheus.CounterVec

	// Cart metrics
	CartOperationsCounter prometheus.CounterVec

	// Order metrics
	OrderOperationsCounter prometheus.CounterVec

	// Advisor metrics
	RecommendationRequestsCounter prometheus.Counter
	RecommendationEmptyCounter    prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_register_attempts_total",
			Help: "Total number of registration attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	SessionTeardownCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_session_teardowns_total",
			Help: "Total number of session teardowns (logout or invalid credential)",
		},
	)

	CatalogOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"operation"},
	)

	CartOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation"},
	)

	OrderOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"},
	)

	RecommendationRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
	)

	RecommendationEmptyCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_recommendation_empty_total",
			Help: "Total number of recommendation requests with no significant match",
		},
	)
}
