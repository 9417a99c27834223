package service

import (
	"errors"

	"github.com/pageturners/api/internal/model"
)

// Sentinel errors returned by the services. Handlers map these to HTTP
// problem responses with errors.Is; nothing outside the handler layer
// looks at status codes.
var (
	// Club / membership
	ErrClubNotFound     = errors.New("club not found")
	ErrClubInactive     = errors.New("club is not active")
	ErrClubPrivate      = errors.New("club is private")
	ErrAlreadyMember    = errors.New("user is already a member")
	ErrCapacityReached  = errors.New("club has reached its member capacity")
	ErrNotAMember       = errors.New("user is not a member of the club")
	ErrNotClubAdmin     = errors.New("user is not a club admin")
	ErrNotClubCreator   = errors.New("user is not the club creator")
	ErrLastAdmin        = errors.New("the last admin cannot leave while the club has other members")
	ErrInvalidRole      = errors.New("invalid club role")
	ErrInvalidRSVP      = errors.New("invalid rsvp status")
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// Events
	ErrEventNotFound      = errors.New("event not found")
	ErrNotEventCreator    = errors.New("user is not the event creator")
	ErrEventTerminal      = errors.New("event is in a terminal state")
	ErrInvalidEventStatus = errors.New("invalid event status transition")

	// Notifications
	ErrNotificationNotFound = errors.New("notification not found")

	// Infrastructure
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError carries per-field validation failures up to the
// handler layer, which renders them as a problem response
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
