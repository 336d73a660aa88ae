package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulsewatch-systems/pulsewatch/internal/handlers"
	"github.com/pulsewatch-systems/pulsewatch/internal/middleware"
)

// NewRouter constructs a ServeMux with monitor API routes registered.
func NewRouter(h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()

	// Monitor API
	mux.HandleFunc("/api/v1/monitor", h.Monitor)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
