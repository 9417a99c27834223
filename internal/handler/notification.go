package handler

import (
	"net/http"

	"github.com/pageturners/api/internal/middleware"
	"github.com/pageturners/api/internal/model"
	"github.com/pageturners/api/internal/service"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	svc *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List handles GET /v1/notifications - list the caller's notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit, offset := paging(r)

	notifications, err := h.svc.ListForUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, notifications, len(notifications), limit, offset)
}

// UnreadCount handles GET /v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	count, err := h.svc.CountUnread(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead handles POST /v1/notifications/{notificationId}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	notificationID := r.PathValue("notificationId")
	if notificationID == "" {
		WriteError(w, model.NewBadRequestError("notification ID required"))
		return
	}

	notification, err := h.svc.MarkRead(ctx, recordID("notification", notificationID), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, notification)
}
