package handler

import (
	"errors"

	"github.com/pageturners/api/internal/model"
	"github.com/pageturners/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return model.NewValidationError(validationErr.Fields)
	}

	switch {
	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotClubAdmin),
		errors.Is(err, service.ErrNotClubCreator),
		errors.Is(err, service.ErrNotEventCreator),
		errors.Is(err, service.ErrNotAMember),
		errors.Is(err, service.ErrClubPrivate):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrClubNotFound):
		return model.NewNotFoundError("club")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrNotificationNotFound):
		return model.NewNotFoundError("notification")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrCapacityReached),
		errors.Is(err, service.ErrLastAdmin):
		return model.NewConflictError(err.Error())

	// ===== Terminal State → 400 =====
	case errors.Is(err, service.ErrEventTerminal):
		return model.NewTerminalStateError(err.Error())

	// ===== Validation / Input Errors → 400 =====
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidRSVP),
		errors.Is(err, service.ErrInvalidEventStatus),
		errors.Is(err, service.ErrClubInactive),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		return model.NewBadRequestError(err.Error())

	// ===== Store Unavailable → 500 =====
	case errors.Is(err, service.ErrUnavailable):
		return model.NewUnavailableError("")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
