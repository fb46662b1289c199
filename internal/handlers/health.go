package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"rednote-ops/internal/contextutil"
)

// nearlyFullRatio is the usage fraction at which storage is reported as degraded.
const nearlyFullRatio = 0.9

// StorageProbe reports on the storage medium backing the saved notes.
type StorageProbe interface {
	Usage(ctx context.Context) (int64, error)
	Quota() int64
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	storage            StorageProbe
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(storage StorageProbe) *HealthHandler {
	return &HealthHandler{
		storage:            storage,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Bytes used by saved notes and the configured quota (0 means unlimited)
	StorageUsedBytes  int64 `json:"storageUsedBytes"`
	StorageQuotaBytes int64 `json:"storageQuotaBytes"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Returns 200 OK when healthy or degraded, 503 Service Unavailable when unhealthy.
// Storage above 90% of its quota is degraded: saves still succeed but
// older notes and covers start being dropped.
//
// swagger:route GET /api/health healthCheck
//
// # Health check endpoint
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: System is healthy or degraded
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}
	httpStatus := http.StatusOK

	used, ok := h.checkStorage(checkCtx, logger)
	quota := h.storage.Quota()
	response.StorageUsedBytes = used
	response.StorageQuotaBytes = quota

	switch {
	case !ok:
		response.Checks["storage"] = "error"
		response.Issues = append(response.Issues, "storage_unavailable")
		response.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case quota > 0 && float64(used) >= float64(quota)*nearlyFullRatio:
		response.Checks["storage"] = "nearly_full"
		response.Issues = append(response.Issues, "storage_nearly_full")
		response.Status = "degraded"
	default:
		response.Checks["storage"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}

// checkStorage reads the current usage, which also proves the medium is reachable.
func (h *HealthHandler) checkStorage(ctx context.Context, logger *slog.Logger) (int64, bool) {
	used, err := h.storage.Usage(ctx)
	if err != nil {
		logger.WarnContext(ctx, "storage health check failed", "error", err)
		return 0, false
	}
	return used, true
}
