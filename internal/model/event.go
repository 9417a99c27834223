package model

import "time"

// Event represents a scheduled club meeting
type Event struct {
	ID          string         `json:"id"`
	ClubID      string         `json:"club_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Date        time.Time      `json:"date"`
	Location    *EventLocation `json:"location,omitempty"`
	Book        *BookRef       `json:"book,omitempty"`
	Attendees   []EventAttendee `json:"attendees"`
	CreatedBy   string         `json:"created_by"`
	MaxAttendees *int          `json:"max_attendees,omitempty"`
	Status      string         `json:"status"` // upcoming, ongoing, completed, cancelled
	Language    string         `json:"language,omitempty"`
	CreatedOn   time.Time      `json:"created_on"`
	UpdatedOn   time.Time      `json:"updated_on"`
}

// EventAttendee is one entry in an event's attendee list, unique per user
type EventAttendee struct {
	UserID     string    `json:"user_id"`
	RSVPStatus string    `json:"rsvp_status"`
	RSVPAt     time.Time `json:"rsvp_at"`
}

// EventLocation describes where an event takes place
type EventLocation struct {
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	VenueType string `json:"venue_type,omitempty"` // library, cafe, home, park, online
}

// BookRef is a denormalized reference to the book being discussed.
// Catalog lookup lives outside this service; the reference is plain data.
type BookRef struct {
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	GoogleBooksID string `json:"google_books_id,omitempty"`
}

// EventStatus constants
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// IsValidEventStatus reports whether s is a known event status
func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminalEventStatus reports whether s permits no further transitions
func IsTerminalEventStatus(s string) bool {
	return s == EventStatusCompleted || s == EventStatusCancelled
}

// CanTransitionEventStatus reports whether the state machine allows
// moving from one status to another. Transitions are monotonic: nothing
// leaves completed or cancelled, and nothing moves backward.
func CanTransitionEventStatus(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case EventStatusUpcoming:
		return to == EventStatusOngoing || to == EventStatusCompleted || to == EventStatusCancelled
	case EventStatusOngoing:
		return to == EventStatusCompleted || to == EventStatusCancelled
	default:
		return false
	}
}

// Attendee returns the attendee entry for userID, or nil
func (e *Event) Attendee(userID string) *EventAttendee {
	for i := range e.Attendees {
		if e.Attendees[i].UserID == userID {
			return &e.Attendees[i]
		}
	}
	return nil
}

// IsTerminal reports whether the event status permits no further transitions
func (e *Event) IsTerminal() bool {
	return IsTerminalEventStatus(e.Status)
}

// AttendeeIDs returns the user ids of all attendees, in list order
func (e *Event) AttendeeIDs() []string {
	ids := make([]string, 0, len(e.Attendees))
	for i := range e.Attendees {
		ids = append(ids, e.Attendees[i].UserID)
	}
	return ids
}

// EventStats is the per-status aggregate used for monitoring
type EventStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Constraints
const (
	MaxEventTitleLength       = 100
	MaxEventDescriptionLength = 2000
)

// CreateEventRequest represents a request to create an event for a club
type CreateEventRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Date         time.Time      `json:"date"`
	Location     *EventLocation `json:"location,omitempty"`
	Book         *BookRef       `json:"book,omitempty"`
	MaxAttendees *int           `json:"max_attendees,omitempty"`
	Language     string         `json:"language,omitempty"`
}

// Validate checks the request fields
func (r *CreateEventRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if len(r.Title) > MaxEventTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "title exceeds maximum length"})
	}
	if len(r.Description) > MaxEventDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: "description exceeds maximum length"})
	}
	if r.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "date is required"})
	}
	if r.MaxAttendees != nil && *r.MaxAttendees < 1 {
		errs = append(errs, FieldError{Field: "max_attendees", Message: "max_attendees must be at least 1"})
	}
	return errs
}

// UpdateEventRequest represents a partial update to an event.
// Status patches must follow the state machine; terminal events reject
// all patches.
type UpdateEventRequest struct {
	Title        *string        `json:"title,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Date         *time.Time     `json:"date,omitempty"`
	Location     *EventLocation `json:"location,omitempty"`
	Book         *BookRef       `json:"book,omitempty"`
	MaxAttendees *int           `json:"max_attendees,omitempty"`
	Status       *string        `json:"status,omitempty"`
	Language     *string        `json:"language,omitempty"`
}

// EventRSVPRequest represents a member's attendance intent for an event
type EventRSVPRequest struct {
	RSVPStatus string `json:"rsvp_status"`
}

// EventSearchFilters narrows event listings
type EventSearchFilters struct {
	ClubID     *string    `json:"club_id,omitempty"`
	Status     *string    `json:"status,omitempty"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
}
