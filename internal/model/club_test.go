package model

import (
	"strings"
	"testing"
)

func TestClubIsFull(t *testing.T) {
	unbounded := &Club{Members: make([]ClubMember, 100)}
	if unbounded.IsFull() {
		t.Error("club without max_members can never be full")
	}

	max := 2
	club := &Club{MaxMembers: &max, Members: []ClubMember{{UserID: "a"}}}
	if club.IsFull() {
		t.Error("club with a free seat is not full")
	}
	club.Members = append(club.Members, ClubMember{UserID: "b"})
	if !club.IsFull() {
		t.Error("club at capacity is full")
	}
}

func TestClubAdminCount(t *testing.T) {
	club := &Club{Members: []ClubMember{
		{UserID: "a", Role: ClubRoleAdmin},
		{UserID: "b", Role: ClubRoleMember},
		{UserID: "c", Role: ClubRoleModerator},
		{UserID: "d", Role: ClubRoleAdmin},
	}}

	if got := club.AdminCount(); got != 2 {
		t.Errorf("expected 2 admins, got %d", got)
	}
	if got := club.AdminIDs(); len(got) != 2 || got[0] != "a" || got[1] != "d" {
		t.Errorf("unexpected admin ids: %v", got)
	}
}

func TestClubRole(t *testing.T) {
	if !ClubRoleAdmin.IsAdmin() || ClubRoleModerator.IsAdmin() || ClubRoleMember.IsAdmin() {
		t.Error("only admin role has admin privileges")
	}
	if !ClubRoleMember.IsValid() || ClubRole("owner").IsValid() {
		t.Error("role validity check broken")
	}
}

func TestIsValidRSVPStatus(t *testing.T) {
	for _, s := range []string{RSVPAttending, RSVPMaybe, RSVPNotAttending, RSVPPending} {
		if !IsValidRSVPStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if IsValidRSVPStatus("perhaps") {
		t.Error("unknown rsvp status accepted")
	}
}

func TestCreateClubRequestValidate(t *testing.T) {
	valid := CreateClubRequest{Name: "Slow Readers"}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Errorf("expected valid request, got %v", errs)
	}

	tooLong := CreateClubRequest{
		Name:        strings.Repeat("x", MaxClubNameLength+1),
		Description: strings.Repeat("y", MaxClubDescLength+1),
	}
	if errs := tooLong.Validate(); len(errs) != 2 {
		t.Errorf("expected 2 length errors, got %v", errs)
	}

	badMax := 0
	capacity := CreateClubRequest{Name: "ok", MaxMembers: &badMax}
	if errs := capacity.Validate(); len(errs) != 1 {
		t.Errorf("expected max_members error, got %v", errs)
	}
}
