// Package api provides the HTTP API handlers for the wave alert monitor.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ritankar/handwave/internal/store"
)

// AlertHandler handles HTTP requests for alert resources.
type AlertHandler struct {
	store *store.Store
}

// NewAlertHandler creates a new AlertHandler with the given store.
func NewAlertHandler(s *store.Store) *AlertHandler {
	return &AlertHandler{store: s}
}

// ServeHTTP routes alert requests.
// Expected paths: /api/alerts or /api/alerts/{id}
func (h *AlertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/alerts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type alertResponse struct {
	ID          string `json:"id"`
	TriggeredAt string `json:"triggered_at"`
	ClearedAt   string `json:"cleared_at,omitempty"`
	Reversals   int    `json:"reversals"`
}

type listAlertsResponse struct {
	Alerts []alertResponse `json:"alerts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Alert to an alertResponse.
func toResponse(a *store.Alert) alertResponse {
	resp := alertResponse{
		ID:          a.ID,
		TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		Reversals:   a.Reversals,
	}
	if a.ClearedAt != nil {
		resp.ClearedAt = a.ClearedAt.Format(time.RFC3339)
	}
	return resp
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/alerts and returns alert history, newest first.
// An optional limit query parameter caps the result.
func (h *AlertHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	alerts, err := h.store.Alerts().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list alerts")
		return
	}

	response := listAlertsResponse{
		Alerts: make([]alertResponse, 0, len(alerts)),
	}
	for _, a := range alerts {
		response.Alerts = append(response.Alerts, toResponse(a))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/alerts/{id} and returns a single alert.
func (h *AlertHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	alert, err := h.store.Alerts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get alert")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(alert))
}

// delete handles DELETE /api/alerts/{id} and removes an alert record.
func (h *AlertHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Alerts().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get alert")
		return
	}

	if err := h.store.Alerts().Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete alert")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
