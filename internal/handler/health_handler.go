// internal/handler/health_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness and database readiness probes.
type HealthHandler struct {
	DB      Pinger
	Service string
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()
	writeStatus(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"service":  h.Service,
		"hostname": hostname,
	})
}

func (h *HealthHandler) HealthDB(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		writeStatus(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "postgres unavailable",
		})
		return
	}
	writeStatus(w, http.StatusOK, map[string]string{"status": "ok", "postgres": "connected"})
}
