package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/prometheus"
)

// MetricsMiddleware records request counts and latencies per route
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := c.Response().Status
		method := c.Request().Method
		path := c.Path()
		statusStr := strconv.Itoa(status)

		prometheus.HttpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, statusStr).
			Observe(time.Since(start).Seconds())

		return err
	}
}
