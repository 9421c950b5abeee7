/*
metrics.go - Prometheus instrumentation

Counts calculate requests per endpoint and rejected authentications.
Exposed on GET /metrics alongside the Go runtime collectors.
*/
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	calculateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "award_engine_calculate_requests_total",
		Help: "Completed calculate requests by endpoint.",
	}, []string{"endpoint"})

	authFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "award_engine_auth_failures_total",
		Help: "Requests rejected by API-key or admin-token checks.",
	})
)

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
