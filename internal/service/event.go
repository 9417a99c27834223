package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
)

// eventRepository is the event store surface the event service needs
type eventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	UpdateFields(ctx context.Context, id string, updates map[string]interface{}) (*model.Event, error)
	ReplaceRSVP(ctx context.Context, eventID string, attendee model.EventAttendee) (*model.Event, error)
	Cancel(ctx context.Context, eventID string) (*model.Event, error)
	AdvanceExpired(ctx context.Context, now time.Time) (int, error)
	List(ctx context.Context, filters *model.EventSearchFilters, limit, offset int) ([]*model.Event, error)
	Stats(ctx context.Context) (*model.EventStats, error)
}

// clubReader is the read-only club access the event service needs for
// authorization checks
type clubReader interface {
	GetByID(ctx context.Context, id string) (*model.Club, error)
}

// userEventRepository maintains event back-references on user documents
type userEventRepository interface {
	AppendEventRef(ctx context.Context, userID, eventID string) error
	RemoveEventRef(ctx context.Context, userID, eventID string) error
}

// eventNotifier receives event lifecycle changes for fan-out.
// Best-effort, same contract as clubNotifier.
type eventNotifier interface {
	EventCreated(ctx context.Context, club *model.Club, event *model.Event, actorID string)
	EventCancelled(ctx context.Context, event *model.Event, actorID string)
	RSVPReceived(ctx context.Context, event *model.Event, userID, rsvpStatus string)
}

// EventService implements the event lifecycle: creation, metadata and
// status updates, RSVPs, cancellation and the expiry sweep
type EventService struct {
	events   eventRepository
	clubs    clubReader
	users    userEventRepository
	notifier eventNotifier
	logger   *slog.Logger
}

// NewEventService creates a new event service
func NewEventService(events eventRepository, clubs clubReader, users userEventRepository, notifier eventNotifier, logger *slog.Logger) *EventService {
	return &EventService{
		events:   events,
		clubs:    clubs,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Create schedules an event for a club. Only the club creator may
// schedule events; the creator is seeded as the first attendee.
func (s *EventService) Create(ctx context.Context, clubID, actorID string, req *model.CreateEventRequest) (*model.Event, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.Creator != actorID {
		return nil, ErrNotClubCreator
	}

	event := &model.Event{
		ClubID:      clubID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Book:        req.Book,
		Attendees: []model.EventAttendee{{
			UserID:     actorID,
			RSVPStatus: model.RSVPAttending,
			RSVPAt:     time.Now().UTC(),
		}},
		CreatedBy:    actorID,
		MaxAttendees: req.MaxAttendees,
		Status:       model.EventStatusUpcoming,
		Language:     req.Language,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := s.users.AppendEventRef(ctx, actorID, event.ID); err != nil {
		s.logger.Warn("failed to record event back-reference",
			"event_id", event.ID, "user_id", actorID, "error", err)
	}

	s.notifier.EventCreated(ctx, club, event, actorID)

	s.logger.Info("event created", "event_id", event.ID, "club_id", clubID, "creator", actorID)
	return event, nil
}

// Get retrieves an event by ID
func (s *EventService) Get(ctx context.Context, eventID string) (*model.Event, error) {
	return s.getEvent(ctx, eventID)
}

// List retrieves events matching the filters
func (s *EventService) List(ctx context.Context, filters *model.EventSearchFilters, limit, offset int) ([]*model.Event, error) {
	events, err := retryRead(ctx, s.logger, func(ctx context.Context) ([]*model.Event, error) {
		return s.events.List(ctx, filters, limit, offset)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return events, nil
}

// Update applies a partial update from the event creator or a club
// admin. Terminal events reject every patch, and a status patch must
// follow the forward-only state machine.
func (s *EventService) Update(ctx context.Context, eventID, actorID string, req *model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != actorID {
		club, err := s.getClub(ctx, event.ClubID)
		if err != nil {
			return nil, err
		}
		member := club.Member(actorID)
		if member == nil || !member.Role.IsAdmin() {
			return nil, ErrNotEventCreator
		}
	}
	if event.IsTerminal() {
		return nil, ErrEventTerminal
	}

	var fieldErrs []model.FieldError
	updates := make(map[string]interface{})
	if req.Title != nil {
		if *req.Title == "" {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "title", Message: "title is required"})
		}
		if len(*req.Title) > model.MaxEventTitleLength {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "title", Message: "title exceeds maximum length"})
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		if len(*req.Description) > model.MaxEventDescriptionLength {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "description", Message: "description exceeds maximum length"})
		}
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Location != nil {
		updates["location"] = req.Location
	}
	if req.Book != nil {
		updates["book"] = req.Book
	}
	if req.MaxAttendees != nil {
		if *req.MaxAttendees < 1 {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "max_attendees", Message: "max_attendees must be at least 1"})
		}
		updates["max_attendees"] = *req.MaxAttendees
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Status != nil {
		if !model.IsValidEventStatus(*req.Status) || !model.CanTransitionEventStatus(event.Status, *req.Status) {
			return nil, ErrInvalidEventStatus
		}
		updates["status"] = *req.Status
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.events.UpdateFields(ctx, eventID, updates)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			// The event reached a terminal status between the read and
			// the write, usually via the sweep.
			return nil, ErrEventTerminal
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.logger.Info("event updated", "event_id", eventID, "actor", actorID)
	return updated, nil
}

// Rsvp records a club member's attendance intent. A repeat RSVP
// overwrites the previous one; the attendee list never holds two
// entries for the same user.
func (s *EventService) Rsvp(ctx context.Context, eventID, userID, rsvpStatus string) (*model.Event, error) {
	if !model.IsValidRSVPStatus(rsvpStatus) {
		return nil, ErrInvalidRSVP
	}

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsTerminal() {
		return nil, ErrEventTerminal
	}

	club, err := s.getClub(ctx, event.ClubID)
	if err != nil {
		return nil, err
	}
	if !club.HasMember(userID) {
		return nil, ErrNotAMember
	}

	attendee := model.EventAttendee{
		UserID:     userID,
		RSVPStatus: rsvpStatus,
		RSVPAt:     time.Now().UTC(),
	}

	updated, err := s.events.ReplaceRSVP(ctx, eventID, attendee)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrEventTerminal
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch rsvpStatus {
	case model.RSVPNotAttending:
		if err := s.users.RemoveEventRef(ctx, userID, eventID); err != nil {
			s.logger.Warn("failed to remove event back-reference",
				"event_id", eventID, "user_id", userID, "error", err)
		}
	default:
		if err := s.users.AppendEventRef(ctx, userID, eventID); err != nil {
			s.logger.Warn("failed to record event back-reference",
				"event_id", eventID, "user_id", userID, "error", err)
		}
	}

	s.notifier.RSVPReceived(ctx, updated, userID, rsvpStatus)

	return updated, nil
}

// Cancel moves the event to cancelled. Creator-only, rejected once the
// event is terminal.
func (s *EventService) Cancel(ctx context.Context, eventID, actorID string) (*model.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != actorID {
		return nil, ErrNotEventCreator
	}
	if event.IsTerminal() {
		return nil, ErrEventTerminal
	}

	updated, err := s.events.Cancel(ctx, eventID)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrEventTerminal
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.notifier.EventCancelled(ctx, updated, actorID)

	s.logger.Info("event cancelled", "event_id", eventID, "actor", actorID)
	return updated, nil
}

// AdvanceExpired completes every upcoming event whose date has passed
// and returns the number advanced. Safe to call repeatedly; a rerun
// finds nothing left to advance.
func (s *EventService) AdvanceExpired(ctx context.Context) (int, error) {
	count, err := s.events.AdvanceExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count > 0 {
		s.logger.Info("expired events completed", "count", count)
	}
	return count, nil
}

// Stats returns per-status event counts
func (s *EventService) Stats(ctx context.Context) (*model.EventStats, error) {
	stats, err := retryRead(ctx, s.logger, func(ctx context.Context) (*model.EventStats, error) {
		return s.events.Stats(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return stats, nil
}

func (s *EventService) getEvent(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := retryRead(ctx, s.logger, func(ctx context.Context) (*model.Event, error) {
		return s.events.GetByID(ctx, eventID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) getClub(ctx context.Context, clubID string) (*model.Club, error) {
	club, err := retryRead(ctx, s.logger, func(ctx context.Context) (*model.Club, error) {
		return s.clubs.GetByID(ctx, clubID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if club == nil {
		return nil, ErrClubNotFound
	}
	return club, nil
}
