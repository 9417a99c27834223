package handler

import (
	"net/http"

	"github.com/pageturners/api/internal/service"
)

// AdminHandler exposes operational endpoints. Routes using it sit
// behind the admin key middleware, not user identity.
type AdminHandler struct {
	events *service.EventService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(events *service.EventService) *AdminHandler {
	return &AdminHandler{events: events}
}

// SweepEvents handles POST /v1/admin/events/sweep - manually trigger
// the expiry sweep and report how many events were completed
func (h *AdminHandler) SweepEvents(w http.ResponseWriter, r *http.Request) {
	count, err := h.events.AdvanceExpired(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]int{"completed": count})
}

// EventStats handles GET /v1/admin/events/stats - per-status counts
func (h *AdminHandler) EventStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.events.Stats(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, stats)
}
