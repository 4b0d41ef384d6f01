package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/session"
)

// StatusResponse is the §6 `GET /status` diagnostic payload.
type StatusResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

// StatusHandler serves the diagnostic /status endpoint.
type StatusHandler struct {
	store  *session.Store
	logger *slog.Logger
}

func NewStatusHandler(store *session.Store, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{store: store, logger: logger}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]interface{})
	overallStatus := "healthy"

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("session store health check failed", "error", err)
		components["session_store"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["session_store"] = "healthy"
	}

	resp := StatusResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "wyrdreach",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode status response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
