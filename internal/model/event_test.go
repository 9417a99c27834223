package model

import (
	"testing"
	"time"
)

func TestCanTransitionEventStatus(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{EventStatusUpcoming, EventStatusOngoing, true},
		{EventStatusUpcoming, EventStatusCompleted, true},
		{EventStatusUpcoming, EventStatusCancelled, true},
		{EventStatusOngoing, EventStatusCompleted, true},
		{EventStatusOngoing, EventStatusCancelled, true},
		{EventStatusOngoing, EventStatusUpcoming, false},
		{EventStatusCompleted, EventStatusCancelled, false},
		{EventStatusCompleted, EventStatusUpcoming, false},
		{EventStatusCancelled, EventStatusCompleted, false},
		{EventStatusUpcoming, EventStatusUpcoming, false},
	}

	for _, tt := range tests {
		if got := CanTransitionEventStatus(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionEventStatus(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminalEventStatus(t *testing.T) {
	if IsTerminalEventStatus(EventStatusUpcoming) || IsTerminalEventStatus(EventStatusOngoing) {
		t.Error("active statuses must not be terminal")
	}
	if !IsTerminalEventStatus(EventStatusCompleted) || !IsTerminalEventStatus(EventStatusCancelled) {
		t.Error("completed and cancelled must be terminal")
	}
}

func TestCreateEventRequestValidate(t *testing.T) {
	valid := CreateEventRequest{Title: "Kickoff", Date: time.Now()}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Errorf("expected valid request, got %v", errs)
	}

	bad := CreateEventRequest{}
	errs := bad.Validate()
	if len(errs) != 2 {
		t.Errorf("expected title and date errors, got %v", errs)
	}

	long := CreateEventRequest{Title: string(make([]byte, MaxEventTitleLength+1)), Date: time.Now()}
	if errs := long.Validate(); len(errs) != 1 {
		t.Errorf("expected title length error, got %v", errs)
	}
}

func TestEventAttendeeLookup(t *testing.T) {
	event := &Event{Attendees: []EventAttendee{
		{UserID: "user:alice", RSVPStatus: RSVPAttending},
	}}

	if a := event.Attendee("user:alice"); a == nil {
		t.Fatal("expected attendee")
	}
	if a := event.Attendee("user:bob"); a != nil {
		t.Errorf("expected nil, got %+v", a)
	}
}
