package handler

import (
	"context"
	"net/http"
	"time"
)

// pinger is the liveness surface of the store
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and store health
type HealthHandler struct {
	db pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]string{"status": status})
}
