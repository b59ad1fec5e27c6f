// Package server provides the HTTP surface of the wave alert monitor.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ritankar/handwave/internal/app"
	"github.com/ritankar/handwave/internal/server/api"
	"github.com/ritankar/handwave/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
	// RefLine is the horizontal position of the overlay reference line as
	// a fraction of the frame width. Zero means the center.
	RefLine float64
}

// Server is the HTTP server for the wave alert monitor.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		alertHandler := api.NewAlertHandler(s.config.Store)
		s.mux.Handle("/api/alerts", alertHandler)
		s.mux.Handle("/api/alerts/", alertHandler)
	}

	if s.config.App != nil {
		s.mux.Handle("/api/status", api.NewStatusHandler(s.config.App))

		refLine := s.config.RefLine
		if refLine <= 0 || refLine >= 1 {
			refLine = 0.5
		}
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App.Camera(), s.config.App.Alerting, refLine))

		s.events = NewEventsHandler()
		s.mux.Handle("/api/events", s.events)

		s.config.App.OnAlert(func(ev app.AlertEvent) {
			s.events.Broadcast(map[string]any{
				"type":      "alert",
				"id":        ev.ID,
				"timestamp": ev.Timestamp.Format(time.RFC3339),
				"reversals": ev.Reversals,
			})
		})
		s.config.App.OnStateChange(func(active bool) {
			s.events.Broadcast(map[string]any{
				"type":     "state",
				"alerting": active,
			})
		})
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
