package handler

import (
	"net/http"
	"time"

	"github.com/pageturners/api/internal/middleware"
	"github.com/pageturners/api/internal/model"
	"github.com/pageturners/api/internal/service"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// Create handles POST /v1/clubs/{clubId}/events - schedule an event
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	clubID := r.PathValue("clubId")
	if clubID == "" {
		WriteError(w, model.NewBadRequestError("club ID required"))
		return
	}

	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.Create(ctx, recordID("club", clubID), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, event)
}

// Get handles GET /v1/events/{eventId} - get event details
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.svc.Get(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// List handles GET /v1/events - list events with optional filters
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &model.EventSearchFilters{}
	q := r.URL.Query()

	if v := q.Get("club_id"); v != "" {
		id := recordID("club", v)
		filters.ClubID = &id
	}
	if v := q.Get("status"); v != "" {
		if !model.IsValidEventStatus(v) {
			WriteError(w, model.NewBadRequestError("invalid status filter"))
			return
		}
		filters.Status = &v
	}
	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteError(w, model.NewBadRequestError("invalid date_from, expected RFC 3339"))
			return
		}
		filters.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteError(w, model.NewBadRequestError("invalid date_to, expected RFC 3339"))
			return
		}
		filters.DateTo = &t
	}

	limit, offset := paging(r)
	events, err := h.svc.List(r.Context(), filters, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, events, len(events), limit, offset)
}

// Update handles PATCH /v1/events/{eventId} - update an event
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.Update(ctx, eventID, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// Rsvp handles PUT /v1/events/{eventId}/rsvp - record attendance intent
func (h *EventHandler) Rsvp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var req model.EventRSVPRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.Rsvp(ctx, eventID, userID, req.RSVPStatus)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// Cancel handles POST /v1/events/{eventId}/cancel - cancel an event
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.svc.Cancel(ctx, eventID, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

func (h *EventHandler) eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("eventId")
	if id == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return "", false
	}
	return recordID("event", id), true
}
