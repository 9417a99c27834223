package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
)

// EventRepository handles event data access. Status and the attendee
// array are mutated only here, and every mutating query carries a
// non-terminal status predicate so the state machine stays monotonic
// even when two writers race.
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event with its seeded attendee list
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			club_id: $club_id,
			title: $title,
			description: IF $description IS NOT NULL THEN $description ELSE NONE END,
			date: $date,
			location: IF $location IS NOT NULL THEN $location ELSE NONE END,
			book: IF $book IS NOT NULL THEN $book ELSE NONE END,
			attendees: $attendees,
			created_by: $created_by,
			max_attendees: IF $max_attendees IS NOT NULL THEN $max_attendees ELSE NONE END,
			status: $status,
			language: IF $language IS NOT NULL THEN $language ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	attendees := make([]map[string]interface{}, 0, len(event.Attendees))
	for _, a := range event.Attendees {
		attendees = append(attendees, attendeeVars(a))
	}

	vars := map[string]interface{}{
		"club_id":       event.ClubID,
		"title":         event.Title,
		"description":   nilIfEmpty(event.Description),
		"date":          event.Date,
		"location":      event.Location,
		"book":          event.Book,
		"attendees":     attendees,
		"created_by":    event.CreatedBy,
		"max_attendees": event.MaxAttendees,
		"status":        event.Status,
		"language":      nilIfEmpty(event.Language),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := decodeRecord[model.Event](result)
	if err != nil {
		return err
	}

	event.ID = created.ID
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an event by ID. Returns (nil, nil) when absent.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	event, err := decodeRecord[model.Event](result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// UpdateFields applies a whitelisted field patch, refused by the store
// once the event has reached a terminal status
func (r *EventRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) (*model.Event, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts := make([]string, 0, len(updates)+1)
	vars := map[string]interface{}{"id": id}
	i := 0
	for field, value := range updates {
		param := fmt.Sprintf("p%d", i)
		setParts = append(setParts, fmt.Sprintf("%s = $%s", field, param))
		vars[param] = value
		i++
	}
	setParts = append(setParts, "updated_on = time::now()")

	query := fmt.Sprintf(`
		UPDATE type::record($id) SET %s
		WHERE status INSIDE ['upcoming', 'ongoing']
		RETURN AFTER
	`, strings.Join(setParts, ", "))

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Event](result)
}

// ReplaceRSVP removes any existing attendee entry for the user and
// appends the new one in a single update, so a re-RSVP can never leave
// two entries behind
func (r *EventRepository) ReplaceRSVP(ctx context.Context, eventID string, attendee model.EventAttendee) (*model.Event, error) {
	query := `
		UPDATE type::record($id) SET
			attendees = attendees[WHERE user_id != $user_id] + [$attendee],
			updated_on = time::now()
		WHERE status INSIDE ['upcoming', 'ongoing']
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":       eventID,
		"user_id":  attendee.UserID,
		"attendee": attendeeVars(attendee),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Event](result)
}

// Cancel moves the event to cancelled unless it is already terminal
func (r *EventRepository) Cancel(ctx context.Context, eventID string) (*model.Event, error) {
	query := `
		UPDATE type::record($id) SET
			status = $cancelled,
			updated_on = time::now()
		WHERE status INSIDE ['upcoming', 'ongoing']
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":        eventID,
		"cancelled": model.EventStatusCancelled,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Event](result)
}

// AdvanceExpired completes every upcoming event whose date has passed
// and returns how many were advanced. The status predicate makes the
// sweep idempotent: a second run matches nothing.
func (r *EventRepository) AdvanceExpired(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE event SET
			status = $completed,
			updated_on = time::now()
		WHERE status = $upcoming AND date < $now
	`
	vars := map[string]interface{}{
		"completed": model.EventStatusCompleted,
		"upcoming":  model.EventStatusUpcoming,
		"now":       now,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}

	return len(unwrapRecords(results)), nil
}

// List retrieves events matching the filters, soonest first
func (r *EventRepository) List(ctx context.Context, filters *model.EventSearchFilters, limit, offset int) ([]*model.Event, error) {
	whereParts := []string{}
	vars := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	if filters != nil {
		if filters.ClubID != nil {
			whereParts = append(whereParts, "club_id = $club_id")
			vars["club_id"] = *filters.ClubID
		}
		if filters.Status != nil {
			whereParts = append(whereParts, "status = $status")
			vars["status"] = *filters.Status
		}
		if filters.DateFrom != nil {
			whereParts = append(whereParts, "date >= $date_from")
			vars["date_from"] = *filters.DateFrom
		}
		if filters.DateTo != nil {
			whereParts = append(whereParts, "date <= $date_to")
			vars["date_to"] = *filters.DateTo
		}
	}

	where := ""
	if len(whereParts) > 0 {
		where = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT * FROM event %s
		ORDER BY date ASC
		LIMIT $limit START $offset
	`, where)

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return decodeRecords[model.Event](results)
}

// Stats returns per-status event counts
func (r *EventRepository) Stats(ctx context.Context) (*model.EventStats, error) {
	query := `SELECT status, count() AS count FROM event GROUP BY status`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	stats := &model.EventStats{}
	for _, record := range unwrapRecords(results) {
		row, ok := record.(map[string]interface{})
		if !ok {
			continue
		}
		count := extractCount(row)
		stats.Total += count
		switch row["status"] {
		case model.EventStatusUpcoming:
			stats.Upcoming = count
		case model.EventStatusOngoing:
			stats.Ongoing = count
		case model.EventStatusCompleted:
			stats.Completed = count
		case model.EventStatusCancelled:
			stats.Cancelled = count
		}
	}

	return stats, nil
}

func attendeeVars(a model.EventAttendee) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     a.UserID,
		"rsvp_status": a.RSVPStatus,
		"rsvp_at":     a.RSVPAt,
	}
}
