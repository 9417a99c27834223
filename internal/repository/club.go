package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
)

// ClubRepository handles club data access. The member array is mutated
// only through the conditional-update methods below; nothing else in the
// codebase writes to it.
type ClubRepository struct {
	db database.Database
}

// NewClubRepository creates a new club repository
func NewClubRepository(db database.Database) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create creates a new club with its seeded member list
func (r *ClubRepository) Create(ctx context.Context, club *model.Club) error {
	query := `
		CREATE club CONTENT {
			name: $name,
			description: IF $description IS NOT NULL THEN $description ELSE NONE END,
			creator: $creator,
			members: $members,
			max_members: IF $max_members IS NOT NULL THEN $max_members ELSE NONE END,
			is_private: $is_private,
			status: $status,
			category: IF $category IS NOT NULL THEN $category ELSE NONE END,
			language: IF $language IS NOT NULL THEN $language ELSE NONE END,
			meeting_time: IF $meeting_time IS NOT NULL THEN $meeting_time ELSE NONE END,
			meeting_frequency: IF $meeting_frequency IS NOT NULL THEN $meeting_frequency ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	members := make([]map[string]interface{}, 0, len(club.Members))
	for _, m := range club.Members {
		members = append(members, memberVars(m))
	}

	vars := map[string]interface{}{
		"name":              club.Name,
		"description":       nilIfEmpty(club.Description),
		"creator":           club.Creator,
		"members":           members,
		"max_members":       club.MaxMembers,
		"is_private":        club.IsPrivate,
		"status":            club.Status,
		"category":          nilIfEmpty(club.Category),
		"language":          nilIfEmpty(club.Language),
		"meeting_time":      club.MeetingTime,
		"meeting_frequency": nilIfEmpty(club.MeetingFrequency),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := decodeRecord[model.Club](result)
	if err != nil {
		return err
	}

	club.ID = created.ID
	club.CreatedOn = created.CreatedOn
	club.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a club by ID. Returns (nil, nil) when absent.
func (r *ClubRepository) GetByID(ctx context.Context, id string) (*model.Club, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	club, err := decodeRecord[model.Club](result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return club, nil
}

// UpdateFields applies a whitelisted field patch. Callers own the
// whitelist; keys arrive here already validated.
func (r *ClubRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) (*model.Club, error) {
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

	query := fmt.Sprintf(`UPDATE type::record($id) SET %s RETURN AFTER`, strings.Join(setParts, ", "))

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Club](result)
}

// AppendMember appends a member entry, guarded by the invariants the
// caller validated: the club is still active, the member count has not
// moved since the precondition check, and the user is not already
// present. A stale precondition comes back as database.ErrConflict so
// the loser of a concurrent join can re-validate instead of overshooting
// capacity or duplicating an entry.
func (r *ClubRepository) AppendMember(ctx context.Context, clubID string, member model.ClubMember, expectedCount int) (*model.Club, error) {
	query := `
		UPDATE type::record($id) SET
			members += $member,
			updated_on = time::now()
		WHERE status = $active
			AND array::len(members) = $expected
			AND array::len(members[WHERE user_id = $user_id]) = 0
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":       clubID,
		"member":   memberVars(member),
		"active":   model.ClubStatusActive,
		"expected": expectedCount,
		"user_id":  member.UserID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Club](result)
}

// RemoveMember removes the member entry for userID. database.ErrConflict
// means the user was not in the member list at write time.
func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID string) (*model.Club, error) {
	query := `
		UPDATE type::record($id) SET
			members = members[WHERE user_id != $user_id],
			updated_on = time::now()
		WHERE array::len(members[WHERE user_id = $user_id]) > 0
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":      clubID,
		"user_id": userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Club](result)
}

// SetMemberRole updates the role on the member entry for userID
func (r *ClubRepository) SetMemberRole(ctx context.Context, clubID, userID string, role model.ClubRole) (*model.Club, error) {
	query := `
		UPDATE type::record($id) SET
			members[WHERE user_id = $user_id].role = $role,
			updated_on = time::now()
		WHERE array::len(members[WHERE user_id = $user_id]) > 0
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":      clubID,
		"user_id": userID,
		"role":    string(role),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Club](result)
}

// SetMemberRSVP updates the meeting RSVP on the member entry for userID
func (r *ClubRepository) SetMemberRSVP(ctx context.Context, clubID, userID, rsvpStatus string) (*model.Club, error) {
	query := `
		UPDATE type::record($id) SET
			members[WHERE user_id = $user_id].rsvp_status = $rsvp_status,
			updated_on = time::now()
		WHERE array::len(members[WHERE user_id = $user_id]) > 0
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":          clubID,
		"user_id":     userID,
		"rsvp_status": rsvpStatus,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}
	return decodeRecord[model.Club](result)
}

// DeleteWithCleanup removes the club document and pulls the club id out
// of every former member's membership list in one atomic batch, so a
// partial failure cannot leave dangling back-references.
func (r *ClubRepository) DeleteWithCleanup(ctx context.Context, club *model.Club) error {
	batch := database.NewAtomicBatch()

	batch.Add(`DELETE type::record($id)`, map[string]interface{}{
		"id": club.ID,
	})

	for _, userID := range club.MemberIDs() {
		batch.Add(`UPDATE type::record($id) SET clubs_joined -= $club_id`, map[string]interface{}{
			"id":      userID,
			"club_id": club.ID,
		})
	}

	batch.Add(`UPDATE type::record($id) SET clubs_created -= $club_id`, map[string]interface{}{
		"id":      club.Creator,
		"club_id": club.ID,
	})

	return batch.Execute(ctx, r.db)
}

func memberVars(m model.ClubMember) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     m.UserID,
		"role":        string(m.Role),
		"joined_at":   m.JoinedAt,
		"rsvp_status": m.RSVPStatus,
	}
}
