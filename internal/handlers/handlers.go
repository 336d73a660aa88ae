package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pulsewatch-systems/pulsewatch/internal/config"
	"github.com/pulsewatch-systems/pulsewatch/internal/httputil"
	"github.com/pulsewatch-systems/pulsewatch/internal/loader"
	"github.com/pulsewatch-systems/pulsewatch/internal/logging"
	"github.com/pulsewatch-systems/pulsewatch/internal/metrics"
	"github.com/pulsewatch-systems/pulsewatch/internal/models"
	"github.com/pulsewatch-systems/pulsewatch/internal/monitor"
)

// Handler serves the monitor API. Detection defaults come from configuration
// and can be overridden per request via query parameters.
type Handler struct {
	defaults models.MonitorConfig
	logger   *logging.Logger
}

func NewHandler(cfg config.MonitorConfig, logger *logging.Logger) *Handler {
	return &Handler{
		defaults: cfg.Detection(),
		logger:   logger,
	}
}

// Health handles liveness requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready handles readiness requests. The service has no external
// dependencies, so ready mirrors healthy.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Monitor handles POST /api/v1/monitor. The body is a JSON array of raw
// heartbeat records; optional interval, allowed_misses and tolerance query
// parameters override the configured defaults.
func (h *Handler) Monitor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cfg, err := h.requestConfig(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := loader.DecodeRecords(r.Body)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "request body must be a JSON array of records")
		return
	}

	result, err := monitor.Run(records, cfg)
	if err != nil {
		// Config was validated above, so this is a contract violation
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.ObserveRun(
		result.Validation.ValidRecords,
		result.Validation.InvalidRecords,
		len(result.Alerts),
		len(result.ServicesMonitored),
		result.DurationMS/1000.0,
	)

	h.logger.InfoContext(r.Context(), "batch processed",
		"total_records", result.Validation.TotalRecords,
		"invalid_records", result.Validation.InvalidRecords,
		"services", len(result.ServicesMonitored),
		"alerts", len(result.Alerts),
		"duration_ms", result.DurationMS,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// requestConfig merges query-parameter overrides onto the configured defaults
func (h *Handler) requestConfig(r *http.Request) (models.MonitorConfig, error) {
	cfg := h.defaults
	q := r.URL.Query()

	if raw := q.Get("interval"); raw != "" {
		d, err := parseDurationParam(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid interval: %w", err)
		}
		cfg.ExpectedInterval = d
	}
	if raw := q.Get("allowed_misses"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid allowed_misses: %w", err)
		}
		cfg.AllowedMisses = n
	}
	if raw := q.Get("tolerance"); raw != "" {
		d, err := parseDurationParam(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid tolerance: %w", err)
		}
		cfg.Tolerance = d
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseDurationParam accepts Go duration strings ("90s", "2m") and bare
// integers, which are taken as seconds
func parseDurationParam(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}
