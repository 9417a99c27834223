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

// joinAttempts bounds the re-validate loop when concurrent joins race on
// the same club. Each lost race re-reads the club, so the loop settles
// quickly under realistic contention.
const joinAttempts = 3

// clubRepository is the club store surface the membership service needs
type clubRepository interface {
	Create(ctx context.Context, club *model.Club) error
	GetByID(ctx context.Context, id string) (*model.Club, error)
	UpdateFields(ctx context.Context, id string, updates map[string]interface{}) (*model.Club, error)
	AppendMember(ctx context.Context, clubID string, member model.ClubMember, expectedCount int) (*model.Club, error)
	RemoveMember(ctx context.Context, clubID, userID string) (*model.Club, error)
	SetMemberRole(ctx context.Context, clubID, userID string, role model.ClubRole) (*model.Club, error)
	SetMemberRSVP(ctx context.Context, clubID, userID, rsvpStatus string) (*model.Club, error)
	DeleteWithCleanup(ctx context.Context, club *model.Club) error
}

// userRepository maintains membership back-references on user documents
type userRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	AppendClubMembership(ctx context.Context, userID, clubID string, kind model.MembershipKind) error
	RemoveClubMembership(ctx context.Context, userID, clubID string) error
}

// clubNotifier receives membership lifecycle events for fan-out.
// Delivery is best-effort: the methods report nothing back, so a
// notification failure can never roll back the change that triggered it.
type clubNotifier interface {
	ClubCreated(ctx context.Context, club *model.Club)
	MemberJoined(ctx context.Context, club *model.Club, userID string)
	MemberLeft(ctx context.Context, club *model.Club, userID string)
	ClubUpdated(ctx context.Context, club *model.Club, actorID string)
	ClubDeleted(ctx context.Context, club *model.Club, actorID string)
}

// MembershipService implements club lifecycle and membership operations
type MembershipService struct {
	clubs    clubRepository
	users    userRepository
	notifier clubNotifier
	logger   *slog.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(clubs clubRepository, users userRepository, notifier clubNotifier, logger *slog.Logger) *MembershipService {
	return &MembershipService{
		clubs:    clubs,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateClub creates a club with the creator seeded as its first admin
func (s *MembershipService) CreateClub(ctx context.Context, userID string, req *model.CreateClubRequest) (*model.Club, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	club := &model.Club{
		Name:        req.Name,
		Description: req.Description,
		Creator:     userID,
		Members: []model.ClubMember{{
			UserID:     userID,
			Role:       model.ClubRoleAdmin,
			JoinedAt:   time.Now().UTC(),
			RSVPStatus: model.RSVPAttending,
		}},
		MaxMembers:       req.MaxMembers,
		IsPrivate:        req.IsPrivate,
		Status:           model.ClubStatusActive,
		Category:         req.Category,
		Language:         req.Language,
		MeetingTime:      req.MeetingTime,
		MeetingFrequency: req.MeetingFrequency,
	}

	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := s.users.AppendClubMembership(ctx, userID, club.ID, model.MembershipCreated); err != nil {
		s.logger.Warn("failed to record club back-reference",
			"club_id", club.ID, "user_id", userID, "error", err)
	}

	s.notifier.ClubCreated(ctx, club)

	s.logger.Info("club created", "club_id", club.ID, "creator", userID)
	return club, nil
}

// Get retrieves a club by ID
func (s *MembershipService) Get(ctx context.Context, clubID string) (*model.Club, error) {
	return s.getClub(ctx, clubID)
}

// ListMembers returns a club's member list. Only members may see it.
func (s *MembershipService) ListMembers(ctx context.Context, clubID, userID string) ([]model.ClubMember, error) {
	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.HasMember(userID) {
		return nil, ErrNotAMember
	}
	return club.Members, nil
}

// Join adds userID to the club as a regular member.
//
// The member count read during validation doubles as the write
// precondition: AppendMember only lands if the count is unchanged, so
// two racing joins for the last seat cannot both succeed. The loser
// gets a conflict from the store and this loop re-reads and
// re-validates, up to joinAttempts times.
func (s *MembershipService) Join(ctx context.Context, clubID, userID string) (*model.Club, error) {
	for attempt := 0; attempt < joinAttempts; attempt++ {
		club, err := s.getClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		if err := validateJoin(club, userID); err != nil {
			return nil, err
		}

		member := model.ClubMember{
			UserID:     userID,
			Role:       model.ClubRoleMember,
			JoinedAt:   time.Now().UTC(),
			RSVPStatus: model.RSVPPending,
		}

		updated, err := s.clubs.AppendMember(ctx, clubID, member, len(club.Members))
		if err != nil {
			if errors.Is(err, database.ErrConflict) {
				s.logger.Debug("join lost a concurrent update, re-validating",
					"club_id", clubID, "user_id", userID, "attempt", attempt+1)
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if err := s.users.AppendClubMembership(ctx, userID, clubID, model.MembershipJoined); err != nil {
			s.logger.Warn("failed to record club back-reference",
				"club_id", clubID, "user_id", userID, "error", err)
		}

		s.notifier.MemberJoined(ctx, updated, userID)

		s.logger.Info("member joined", "club_id", clubID, "user_id", userID)
		return updated, nil
	}

	// Retries exhausted. One more read tells the caller the real reason
	// if the club filled up or they got added by a parallel request;
	// otherwise the contention itself is the failure.
	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err := validateJoin(club, userID); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}

func validateJoin(club *model.Club, userID string) error {
	if club.Status != model.ClubStatusActive {
		return ErrClubInactive
	}
	if club.IsPrivate {
		return ErrClubPrivate
	}
	if club.HasMember(userID) {
		return ErrAlreadyMember
	}
	if club.IsFull() {
		return ErrCapacityReached
	}
	return nil
}

// Leave removes userID from the club. The sole admin of a club that
// still has other members cannot leave; another admin has to be
// promoted first. The last remaining member may always leave.
func (s *MembershipService) Leave(ctx context.Context, clubID, userID string) (*model.Club, error) {
	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	member := club.Member(userID)
	if member == nil {
		return nil, ErrNotAMember
	}
	if member.Role.IsAdmin() && club.AdminCount() == 1 && len(club.Members) > 1 {
		return nil, ErrLastAdmin
	}

	updated, err := s.clubs.RemoveMember(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := s.users.RemoveClubMembership(ctx, userID, clubID); err != nil {
		s.logger.Warn("failed to remove club back-reference",
			"club_id", clubID, "user_id", userID, "error", err)
	}

	s.notifier.MemberLeft(ctx, updated, userID)

	s.logger.Info("member left", "club_id", clubID, "user_id", userID)
	return updated, nil
}

// SetRole changes a member's role. Only admins may change roles, and
// the sole admin cannot demote themselves while other members remain.
func (s *MembershipService) SetRole(ctx context.Context, clubID, actorID, targetID string, role model.ClubRole) (*model.Club, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	actor := club.Member(actorID)
	if actor == nil || !actor.Role.IsAdmin() {
		return nil, ErrNotClubAdmin
	}

	target := club.Member(targetID)
	if target == nil {
		return nil, ErrNotAMember
	}
	if target.Role.IsAdmin() && !role.IsAdmin() && club.AdminCount() == 1 && len(club.Members) > 1 {
		return nil, ErrLastAdmin
	}

	updated, err := s.clubs.SetMemberRole(ctx, clubID, targetID, role)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.logger.Info("member role changed",
		"club_id", clubID, "user_id", targetID, "role", role, "actor", actorID)
	return updated, nil
}

// UpdateClub applies an admin's partial update to club metadata
func (s *MembershipService) UpdateClub(ctx context.Context, clubID, actorID string, req *model.UpdateClubRequest) (*model.Club, error) {
	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	actor := club.Member(actorID)
	if actor == nil || !actor.Role.IsAdmin() {
		return nil, ErrNotClubAdmin
	}

	var fieldErrs []model.FieldError
	updates := make(map[string]interface{})
	if req.Name != nil {
		if *req.Name == "" {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "name", Message: "name is required"})
		}
		if len(*req.Name) > model.MaxClubNameLength {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "name", Message: "name exceeds maximum length"})
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		if len(*req.Description) > model.MaxClubDescLength {
			fieldErrs = append(fieldErrs, model.FieldError{Field: "description", Message: "description exceeds maximum length"})
		}
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}
	if req.MeetingTime != nil {
		updates["meeting_time"] = *req.MeetingTime
	}
	if req.MeetingFrequency != nil {
		updates["meeting_frequency"] = *req.MeetingFrequency
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.clubs.UpdateFields(ctx, clubID, updates)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.notifier.ClubUpdated(ctx, updated, actorID)

	s.logger.Info("club updated", "club_id", clubID, "actor", actorID)
	return updated, nil
}

// Delete removes the club and all membership back-references. Requires
// an admin. Events and notifications referencing the club are left in
// place; readers tolerate the dangling id.
func (s *MembershipService) Delete(ctx context.Context, clubID, actorID string) error {
	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return err
	}
	member := club.Member(actorID)
	if member == nil || !member.Role.IsAdmin() {
		return ErrNotClubAdmin
	}

	if err := s.clubs.DeleteWithCleanup(ctx, club); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.notifier.ClubDeleted(ctx, club, actorID)

	s.logger.Info("club deleted", "club_id", clubID, "actor", actorID)
	return nil
}

// RsvpToMeeting records a member's RSVP for the club's recurring meeting
func (s *MembershipService) RsvpToMeeting(ctx context.Context, clubID, userID, rsvpStatus string) (*model.Club, error) {
	if !model.IsValidRSVPStatus(rsvpStatus) {
		return nil, ErrInvalidRSVP
	}

	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.HasMember(userID) {
		return nil, ErrNotAMember
	}

	updated, err := s.clubs.SetMemberRSVP(ctx, clubID, userID, rsvpStatus)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return updated, nil
}

// CheckMembership reports whether userID is a member of the club
func (s *MembershipService) CheckMembership(ctx context.Context, clubID, userID string) (bool, error) {
	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return false, err
	}
	return club.HasMember(userID), nil
}

// IsAdmin reports whether userID holds the admin role in the club
func (s *MembershipService) IsAdmin(ctx context.Context, clubID, userID string) (bool, error) {
	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return false, err
	}
	member := club.Member(userID)
	return member != nil && member.Role.IsAdmin(), nil
}

// getClub reads a club, retrying once on a store failure
func (s *MembershipService) getClub(ctx context.Context, clubID string) (*model.Club, error) {
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
