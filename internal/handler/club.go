package handler

import (
	"net/http"
	"strings"

	"github.com/pageturners/api/internal/middleware"
	"github.com/pageturners/api/internal/model"
	"github.com/pageturners/api/internal/service"
)

// ClubHandler handles club and membership HTTP requests
type ClubHandler struct {
	svc *service.MembershipService
}

// NewClubHandler creates a new club handler
func NewClubHandler(svc *service.MembershipService) *ClubHandler {
	return &ClubHandler{svc: svc}
}

// Create handles POST /v1/clubs - create a new club
func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateClubRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	club, err := h.svc.CreateClub(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, club)
}

// Get handles GET /v1/clubs/{clubId} - get club details
func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	club, err := h.svc.Get(r.Context(), clubID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, club)
}

// Update handles PATCH /v1/clubs/{clubId} - update club metadata
func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	var req model.UpdateClubRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	club, err := h.svc.UpdateClub(ctx, clubID, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, club)
}

// Delete handles DELETE /v1/clubs/{clubId} - delete a club
func (h *ClubHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx, clubID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Join handles POST /v1/clubs/{clubId}/members - join a club
func (h *ClubHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	club, err := h.svc.Join(ctx, clubID, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, club)
}

// Leave handles DELETE /v1/clubs/{clubId}/members/me - leave a club
func (h *ClubHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Leave(ctx, clubID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// ListMembers handles GET /v1/clubs/{clubId}/members - list members
func (h *ClubHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	members, err := h.svc.ListMembers(r.Context(), clubID, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, members)
}

// SetMemberRole handles PUT /v1/clubs/{clubId}/members/{userId}/role
func (h *ClubHandler) SetMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetUserID(ctx)
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	targetID := r.PathValue("userId")
	if targetID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	var req model.UpdateMemberRoleRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	club, err := h.svc.SetRole(ctx, clubID, actorID, recordID("user", targetID), req.Role)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, club)
}

// MeetingRSVP handles PUT /v1/clubs/{clubId}/rsvp - RSVP to the
// club's recurring meeting
func (h *ClubHandler) MeetingRSVP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	var req model.MeetingRSVPRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	club, err := h.svc.RsvpToMeeting(ctx, clubID, userID, req.RSVPStatus)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, club)
}

func (h *ClubHandler) clubID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("clubId")
	if id == "" {
		WriteError(w, model.NewBadRequestError("club ID required"))
		return "", false
	}
	return recordID("club", id), true
}

// recordID prefixes an id with its table when the client sent the bare
// part after the colon
func recordID(table, id string) string {
	if strings.Contains(id, ":") {
		return id
	}
	return table + ":" + id
}
