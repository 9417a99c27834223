package repository

import (
	"context"
	"errors"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
)

// UserRepository reads directory summaries and maintains the club and
// event back-references on user documents. It never writes identity
// fields; accounts are owned by another service.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := decodeRecord[model.User](result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// AppendClubMembership records a club on the user's membership lists.
// array::union keeps the write idempotent: replaying it after a retry
// cannot produce a duplicate entry. A created club lands in both lists
// since the creator is also a member.
func (r *UserRepository) AppendClubMembership(ctx context.Context, userID, clubID string, kind model.MembershipKind) error {
	query := `
		UPDATE type::record($id) SET
			clubs_joined = array::union(clubs_joined OR [], [$club_id])
	`
	if kind == model.MembershipCreated {
		query = `
			UPDATE type::record($id) SET
				clubs_joined = array::union(clubs_joined OR [], [$club_id]),
				clubs_created = array::union(clubs_created OR [], [$club_id])
		`
	}
	vars := map[string]interface{}{
		"id":      userID,
		"club_id": clubID,
	}
	return r.db.Execute(ctx, query, vars)
}

// RemoveClubMembership drops a club from the user's joined list
func (r *UserRepository) RemoveClubMembership(ctx context.Context, userID, clubID string) error {
	query := `
		UPDATE type::record($id) SET
			clubs_joined -= $club_id
	`
	vars := map[string]interface{}{
		"id":      userID,
		"club_id": clubID,
	}
	return r.db.Execute(ctx, query, vars)
}

// AppendEventRef records an event on the user's event list, idempotently
func (r *UserRepository) AppendEventRef(ctx context.Context, userID, eventID string) error {
	query := `
		UPDATE type::record($id) SET
			events = array::union(events OR [], [$event_id])
	`
	vars := map[string]interface{}{
		"id":       userID,
		"event_id": eventID,
	}
	return r.db.Execute(ctx, query, vars)
}

// RemoveEventRef drops an event from the user's event list
func (r *UserRepository) RemoveEventRef(ctx context.Context, userID, eventID string) error {
	query := `
		UPDATE type::record($id) SET
			events -= $event_id
	`
	vars := map[string]interface{}{
		"id":       userID,
		"event_id": eventID,
	}
	return r.db.Execute(ctx, query, vars)
}
