package model

import "time"

// Club represents a book club with a bounded, role-tagged member list
type Club struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Creator     string       `json:"creator"`
	Members     []ClubMember `json:"members"`
	// MaxMembers is the optional capacity bound; nil means unbounded
	MaxMembers       *int       `json:"max_members,omitempty"`
	IsPrivate        bool       `json:"is_private"`
	Status           string     `json:"status"` // active, inactive, archived
	Category         string     `json:"category,omitempty"`
	Language         string     `json:"language,omitempty"`
	MeetingTime      *time.Time `json:"meeting_time,omitempty"`
	MeetingFrequency string     `json:"meeting_frequency,omitempty"`
	CreatedOn        time.Time  `json:"created_on"`
	UpdatedOn        time.Time  `json:"updated_on"`
}

// ClubMember is one entry in a club's member list, unique per user
type ClubMember struct {
	UserID     string    `json:"user_id"`
	Role       ClubRole  `json:"role"`
	JoinedAt   time.Time `json:"joined_at"`
	RSVPStatus string    `json:"rsvp_status"` // attending, maybe, not_attending, pending
}

// ClubStatus constants
const (
	ClubStatusActive   = "active"
	ClubStatusInactive = "inactive"
	ClubStatusArchived = "archived"
)

// ClubRole represents a member's role within a club
type ClubRole string

const (
	ClubRoleMember    ClubRole = "member"    // Default - can participate
	ClubRoleModerator ClubRole = "moderator" // Can manage content
	ClubRoleAdmin     ClubRole = "admin"     // Full club management
)

// IsAdmin returns true if the role has admin privileges
func (r ClubRole) IsAdmin() bool {
	return r == ClubRoleAdmin
}

// IsValid returns true if the role is a valid club role
func (r ClubRole) IsValid() bool {
	switch r {
	case ClubRoleMember, ClubRoleModerator, ClubRoleAdmin:
		return true
	default:
		return false
	}
}

// RSVPStatus constants, shared by club meeting RSVPs and event attendance
const (
	RSVPAttending    = "attending"
	RSVPMaybe        = "maybe"
	RSVPNotAttending = "not_attending"
	RSVPPending      = "pending"
)

// IsValidRSVPStatus reports whether s is one of the four RSVP values
func IsValidRSVPStatus(s string) bool {
	switch s {
	case RSVPAttending, RSVPMaybe, RSVPNotAttending, RSVPPending:
		return true
	default:
		return false
	}
}

// Member returns the membership entry for userID, or nil
func (c *Club) Member(userID string) *ClubMember {
	for i := range c.Members {
		if c.Members[i].UserID == userID {
			return &c.Members[i]
		}
	}
	return nil
}

// HasMember reports whether userID appears in the member list
func (c *Club) HasMember(userID string) bool {
	return c.Member(userID) != nil
}

// IsFull reports whether the member list has reached MaxMembers
func (c *Club) IsFull() bool {
	return c.MaxMembers != nil && len(c.Members) >= *c.MaxMembers
}

// AdminCount returns the number of members holding the admin role
func (c *Club) AdminCount() int {
	n := 0
	for i := range c.Members {
		if c.Members[i].Role == ClubRoleAdmin {
			n++
		}
	}
	return n
}

// MemberIDs returns the user ids of all members, in list order
func (c *Club) MemberIDs() []string {
	ids := make([]string, 0, len(c.Members))
	for i := range c.Members {
		ids = append(ids, c.Members[i].UserID)
	}
	return ids
}

// AdminIDs returns the user ids of all admin members
func (c *Club) AdminIDs() []string {
	ids := make([]string, 0, 1)
	for i := range c.Members {
		if c.Members[i].Role == ClubRoleAdmin {
			ids = append(ids, c.Members[i].UserID)
		}
	}
	return ids
}

// Business constraints
const (
	MaxClubNameLength = 100
	MaxClubDescLength = 500
)

// CreateClubRequest represents a request to create a club
type CreateClubRequest struct {
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	MaxMembers       *int       `json:"max_members,omitempty"`
	IsPrivate        bool       `json:"is_private"`
	Category         string     `json:"category,omitempty"`
	Language         string     `json:"language,omitempty"`
	MeetingTime      *time.Time `json:"meeting_time,omitempty"`
	MeetingFrequency string     `json:"meeting_frequency,omitempty"`
}

// Validate checks the request fields
func (r *CreateClubRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > MaxClubNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
	}
	if len(r.Description) > MaxClubDescLength {
		errs = append(errs, FieldError{Field: "description", Message: "description exceeds maximum length"})
	}
	if r.MaxMembers != nil && *r.MaxMembers < 1 {
		errs = append(errs, FieldError{Field: "max_members", Message: "max_members must be at least 1"})
	}
	return errs
}

// UpdateClubRequest represents an admin's partial update to club metadata.
// Membership and status are never patched through this request.
type UpdateClubRequest struct {
	Name             *string    `json:"name,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Category         *string    `json:"category,omitempty"`
	Language         *string    `json:"language,omitempty"`
	IsPrivate        *bool      `json:"is_private,omitempty"`
	MeetingTime      *time.Time `json:"meeting_time,omitempty"`
	MeetingFrequency *string    `json:"meeting_frequency,omitempty"`
}

// UpdateMemberRoleRequest represents a request to change a member's role
type UpdateMemberRoleRequest struct {
	Role ClubRole `json:"role"`
}

// MeetingRSVPRequest represents a member's RSVP to the club's recurring meeting
type MeetingRSVPRequest struct {
	RSVPStatus string `json:"rsvp_status"`
}
