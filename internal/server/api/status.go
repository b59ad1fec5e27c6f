package api

import (
	"encoding/json"
	"net/http"

	"github.com/ritankar/handwave/internal/app"
)

// Monitor is the slice of the application the status handler needs.
type Monitor interface {
	Status() app.Status
	SetEnabled(enabled bool)
}

// StatusHandler exposes the monitor state and the enable/disable switch.
type StatusHandler struct {
	monitor Monitor
}

// NewStatusHandler creates a new StatusHandler over the given monitor.
func NewStatusHandler(m Monitor) *StatusHandler {
	return &StatusHandler{monitor: m}
}

type updateStatusRequest struct {
	Enabled *bool `json:"enabled"`
}

// ServeHTTP handles GET and POST requests to /api/status.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.monitor.Status())
	case http.MethodPost:
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "Enabled is required")
			return
		}
		h.monitor.SetEnabled(*req.Enabled)
		writeJSON(w, http.StatusOK, h.monitor.Status())
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
