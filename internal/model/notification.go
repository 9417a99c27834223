package model

import "time"

// Notification is a per-recipient message created by fan-out. It is
// immutable once created except for the read flag. RelatedClub and
// RelatedEvent are back-references, never ownership links: deleting a
// club or event does not delete its notifications, so readers must
// tolerate dangling ids.
type Notification struct {
	ID           string     `json:"id"`
	Recipient    string     `json:"recipient"`
	Sender       *string    `json:"sender,omitempty"` // nil for system notifications
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	RelatedClub  *string    `json:"related_club,omitempty"`
	RelatedEvent *string    `json:"related_event,omitempty"`
	IsRead       bool       `json:"is_read"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
}

// Notification type constants
const (
	NotificationClubInvite         = "book_club_invite"
	NotificationClubRSVP           = "book_club_rsvp"
	NotificationClubUpdate         = "book_club_update"
	NotificationClubEvent          = "book_club_event"
	NotificationMeetingReminder    = "meeting_reminder"
	NotificationSystemAnnouncement = "system_announcement"
)
