package repository

import (
	"context"
	"errors"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
)

// NotificationRepository handles notification data access
type NotificationRepository struct {
	db database.Database
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a single notification
func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		CREATE notification CONTENT {
			recipient: $recipient,
			sender: IF $sender IS NOT NULL THEN $sender ELSE NONE END,
			type: $type,
			title: $title,
			message: $message,
			related_club: IF $related_club IS NOT NULL THEN $related_club ELSE NONE END,
			related_event: IF $related_event IS NOT NULL THEN $related_event ELSE NONE END,
			is_read: false,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"recipient":     notification.Recipient,
		"sender":        notification.Sender,
		"type":          notification.Type,
		"title":         notification.Title,
		"message":       notification.Message,
		"related_club":  notification.RelatedClub,
		"related_event": notification.RelatedEvent,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := decodeRecord[model.Notification](result)
	if err != nil {
		return err
	}

	notification.ID = created.ID
	notification.CreatedOn = created.CreatedOn
	return nil
}

// CreateBulk inserts a batch of notifications in one statement and
// returns how many were created
func (r *NotificationRepository) CreateBulk(ctx context.Context, notifications []*model.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	batch := make([]map[string]interface{}, 0, len(notifications))
	for _, n := range notifications {
		batch = append(batch, map[string]interface{}{
			"recipient":     n.Recipient,
			"sender":        n.Sender,
			"type":          n.Type,
			"title":         n.Title,
			"message":       n.Message,
			"related_club":  n.RelatedClub,
			"related_event": n.RelatedEvent,
			"is_read":       false,
		})
	}

	query := `INSERT INTO notification $batch`
	vars := map[string]interface{}{"batch": batch}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}

	return len(unwrapRecords(results)), nil
}

// ListByRecipient retrieves a user's notifications, newest first.
// unreadOnly narrows to notifications not yet marked read.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	where := "WHERE recipient = $recipient"
	if unreadOnly {
		where += " AND is_read = false"
	}

	query := `
		SELECT * FROM notification ` + where + `
		ORDER BY created_on DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"recipient": userID,
		"limit":     limit,
		"offset":    offset,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return decodeRecords[model.Notification](results)
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT count() AS count FROM notification
		WHERE recipient = $recipient AND is_read = false
		GROUP ALL
	`
	vars := map[string]interface{}{"recipient": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// MarkRead marks a notification as read, scoped to the recipient so a
// user cannot mark someone else's notification
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) (*model.Notification, error) {
	query := `
		UPDATE type::record($id) SET
			is_read = true,
			read_at = time::now()
		WHERE recipient = $recipient
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":        notificationID,
		"recipient": userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return decodeRecord[model.Notification](result)
}
