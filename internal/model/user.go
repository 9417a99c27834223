package model

// User is the directory summary this service consumes. Accounts,
// credentials and profiles are owned elsewhere; the engine only reads
// identity fields and appends/removes club and event back-references.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Avatar       string   `json:"avatar,omitempty"`
	ClubsJoined  []string `json:"clubs_joined,omitempty"`
	ClubsCreated []string `json:"clubs_created,omitempty"`
	Events       []string `json:"events,omitempty"`
}

// MembershipKind distinguishes how a club landed in a user's membership list
type MembershipKind string

const (
	MembershipJoined  MembershipKind = "joined"
	MembershipCreated MembershipKind = "created"
)
