package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
)

// notificationRepository is the notification store surface
type notificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	CreateBulk(ctx context.Context, notifications []*model.Notification) (int, error)
	ListByRecipient(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID, userID string) (*model.Notification, error)
}

// NotificationService fans lifecycle changes out to per-recipient
// notifications and serves the read side of the inbox.
//
// Fan-out is strictly best-effort: the fan-out methods log failures and
// return nothing, so a dropped notification can never fail or roll back
// the membership or event change that triggered it. The actor of a
// change is always excluded from its recipients.
type NotificationService struct {
	notifications notificationRepository
	logger        *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications notificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

// ClubCreated confirms club creation to the creator
func (s *NotificationService) ClubCreated(ctx context.Context, club *model.Club) {
	s.deliver(ctx, &model.Notification{
		Recipient:   club.Creator,
		Type:        model.NotificationSystemAnnouncement,
		Title:       "Club created",
		Message:     fmt.Sprintf("Your club %q is live. Invite some readers!", club.Name),
		RelatedClub: &club.ID,
	})
}

// MemberJoined tells the club admins about a new member
func (s *NotificationService) MemberJoined(ctx context.Context, club *model.Club, userID string) {
	s.fanOut(ctx, club.AdminIDs(), userID, func(recipient string) *model.Notification {
		return &model.Notification{
			Recipient:   recipient,
			Sender:      &userID,
			Type:        model.NotificationClubUpdate,
			Title:       "New member",
			Message:     fmt.Sprintf("A new member joined %q.", club.Name),
			RelatedClub: &club.ID,
		}
	})
}

// MemberLeft tells the club admins a member left
func (s *NotificationService) MemberLeft(ctx context.Context, club *model.Club, userID string) {
	s.fanOut(ctx, club.AdminIDs(), userID, func(recipient string) *model.Notification {
		return &model.Notification{
			Recipient:   recipient,
			Sender:      &userID,
			Type:        model.NotificationClubUpdate,
			Title:       "Member left",
			Message:     fmt.Sprintf("A member left %q.", club.Name),
			RelatedClub: &club.ID,
		}
	})
}

// ClubUpdated tells all members the club details changed
func (s *NotificationService) ClubUpdated(ctx context.Context, club *model.Club, actorID string) {
	s.fanOut(ctx, club.MemberIDs(), actorID, func(recipient string) *model.Notification {
		return &model.Notification{
			Recipient:   recipient,
			Sender:      &actorID,
			Type:        model.NotificationClubUpdate,
			Title:       "Club updated",
			Message:     fmt.Sprintf("The details of %q changed.", club.Name),
			RelatedClub: &club.ID,
		}
	})
}

// ClubDeleted tells all former members the club is gone. The club id is
// kept as a reference even though the record no longer resolves.
func (s *NotificationService) ClubDeleted(ctx context.Context, club *model.Club, actorID string) {
	s.fanOut(ctx, club.MemberIDs(), actorID, func(recipient string) *model.Notification {
		return &model.Notification{
			Recipient:   recipient,
			Sender:      &actorID,
			Type:        model.NotificationClubUpdate,
			Title:       "Club deleted",
			Message:     fmt.Sprintf("The club %q has been deleted.", club.Name),
			RelatedClub: &club.ID,
		}
	})
}

// EventCreated tells all club members about a new event
func (s *NotificationService) EventCreated(ctx context.Context, club *model.Club, event *model.Event, actorID string) {
	s.fanOut(ctx, club.MemberIDs(), actorID, func(recipient string) *model.Notification {
		return &model.Notification{
			Recipient:    recipient,
			Sender:       &actorID,
			Type:         model.NotificationClubEvent,
			Title:        "New event",
			Message:      fmt.Sprintf("%q scheduled a new event: %s", club.Name, event.Title),
			RelatedClub:  &club.ID,
			RelatedEvent: &event.ID,
		}
	})
}

// EventCancelled tells all attendees the event was cancelled
func (s *NotificationService) EventCancelled(ctx context.Context, event *model.Event, actorID string) {
	s.fanOut(ctx, event.AttendeeIDs(), actorID, func(recipient string) *model.Notification {
		return &model.Notification{
			Recipient:    recipient,
			Sender:       &actorID,
			Type:         model.NotificationClubEvent,
			Title:        "Event cancelled",
			Message:      fmt.Sprintf("The event %q has been cancelled.", event.Title),
			RelatedClub:  &event.ClubID,
			RelatedEvent: &event.ID,
		}
	})
}

// RSVPReceived tells the event creator someone responded
func (s *NotificationService) RSVPReceived(ctx context.Context, event *model.Event, userID, rsvpStatus string) {
	if event.CreatedBy == userID {
		return
	}
	s.deliver(ctx, &model.Notification{
		Recipient:    event.CreatedBy,
		Sender:       &userID,
		Type:         model.NotificationClubRSVP,
		Title:        "RSVP received",
		Message:      fmt.Sprintf("A member responded %q to %s.", rsvpStatus, event.Title),
		RelatedClub:  &event.ClubID,
		RelatedEvent: &event.ID,
	})
}

// ListForUser retrieves a user's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	notifications, err := retryRead(ctx, s.logger, func(ctx context.Context) ([]*model.Notification, error) {
		return s.notifications.ListByRecipient(ctx, userID, unreadOnly, limit, offset)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	count, err := retryRead(ctx, s.logger, func(ctx context.Context) (int, error) {
		return s.notifications.CountUnread(ctx, userID)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) (*model.Notification, error) {
	notification, err := s.notifications.MarkRead(ctx, notificationID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return notification, nil
}

// deliver writes a single notification, logging instead of failing
func (s *NotificationService) deliver(ctx context.Context, notification *model.Notification) {
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("notification delivery failed",
			"recipient", notification.Recipient, "type", notification.Type, "error", err)
	}
}

// fanOut builds one notification per recipient, skipping the actor, and
// inserts them in one batch. A short delivery is logged, never returned.
func (s *NotificationService) fanOut(ctx context.Context, recipients []string, exclude string, build func(recipient string) *model.Notification) {
	batch := make([]*model.Notification, 0, len(recipients))
	seen := make(map[string]struct{}, len(recipients))
	for _, recipient := range recipients {
		if recipient == exclude {
			continue
		}
		if _, dup := seen[recipient]; dup {
			continue
		}
		seen[recipient] = struct{}{}
		batch = append(batch, build(recipient))
	}
	if len(batch) == 0 {
		return
	}

	created, err := s.notifications.CreateBulk(ctx, batch)
	if err != nil {
		s.logger.Warn("notification fan-out failed",
			"recipients", len(batch), "error", err)
		return
	}
	if created < len(batch) {
		s.logger.Warn("notification fan-out incomplete",
			"created", created, "expected", len(batch))
	}
}
