package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
)

type mockNotificationRepo struct {
	mu      sync.Mutex
	stored  []*model.Notification
	bulkErr error
	err     error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	n.ID = "notification:1"
	n.CreatedOn = time.Now()
	m.stored = append(m.stored, n)
	return nil
}

func (m *mockNotificationRepo) CreateBulk(ctx context.Context, ns []*model.Notification) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bulkErr != nil {
		return 0, m.bulkErr
	}
	m.stored = append(m.stored, ns...)
	return len(ns), nil
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Notification
	for _, n := range m.stored {
		if n.Recipient != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.stored {
		if n.Recipient == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, notificationID, userID string) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.stored {
		if n.ID == notificationID && n.Recipient == userID {
			n.IsRead = true
			now := time.Now()
			n.ReadAt = &now
			return n, nil
		}
	}
	return nil, database.ErrNotFound
}

func recipientsOf(stored []*model.Notification) map[string]int {
	out := make(map[string]int)
	for _, n := range stored {
		out[n.Recipient]++
	}
	return out
}

func TestFanOutExcludesActor(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, testLogger())

	club := &model.Club{
		ID:   "club:1",
		Name: "Slow Readers",
		Members: []model.ClubMember{
			{UserID: "user:alice", Role: model.ClubRoleAdmin},
			{UserID: "user:bob", Role: model.ClubRoleMember},
			{UserID: "user:carol", Role: model.ClubRoleMember},
		},
	}

	svc.ClubUpdated(context.Background(), club, "user:bob")

	got := recipientsOf(repo.stored)
	if len(repo.stored) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(repo.stored))
	}
	if got["user:bob"] != 0 {
		t.Error("actor must not be notified about their own change")
	}
	if got["user:alice"] != 1 || got["user:carol"] != 1 {
		t.Errorf("unexpected recipients: %v", got)
	}
}

func TestFanOutDeduplicatesRecipients(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, testLogger())

	event := &model.Event{
		ID:     "event:1",
		ClubID: "club:1",
		Title:  "Kickoff",
		Attendees: []model.EventAttendee{
			{UserID: "user:alice"},
			{UserID: "user:alice"},
			{UserID: "user:bob"},
		},
	}

	svc.EventCancelled(context.Background(), event, "user:carol")

	if len(repo.stored) != 2 {
		t.Errorf("expected deduplicated fan-out of 2, got %d", len(repo.stored))
	}
}

func TestFanOutFailureIsSwallowed(t *testing.T) {
	repo := &mockNotificationRepo{bulkErr: errors.New("store down")}
	svc := NewNotificationService(repo, testLogger())

	club := &model.Club{
		ID:      "club:1",
		Name:    "Slow Readers",
		Members: []model.ClubMember{{UserID: "user:alice", Role: model.ClubRoleAdmin}},
	}

	// Must not panic or surface the error; the triggering change stands.
	svc.MemberJoined(context.Background(), club, "user:bob")
}

func TestRSVPReceivedSkipsSelf(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, testLogger())

	event := &model.Event{ID: "event:1", ClubID: "club:1", Title: "Kickoff", CreatedBy: "user:alice"}

	svc.RSVPReceived(context.Background(), event, "user:alice", model.RSVPAttending)
	if len(repo.stored) != 0 {
		t.Error("creator rsvp must not notify the creator")
	}

	svc.RSVPReceived(context.Background(), event, "user:bob", model.RSVPAttending)
	if len(repo.stored) != 1 || repo.stored[0].Recipient != "user:alice" {
		t.Errorf("expected one notification to the creator, got %+v", repo.stored)
	}
}

func TestMarkReadNotFound(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, testLogger())

	_, err := svc.MarkRead(context.Background(), "notification:404", "user:alice")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestListForUserUnreadOnly(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, testLogger())

	repo.stored = []*model.Notification{
		{ID: "notification:1", Recipient: "user:alice", IsRead: true},
		{ID: "notification:2", Recipient: "user:alice"},
		{ID: "notification:3", Recipient: "user:bob"},
	}

	all, err := svc.ListForUser(context.Background(), "user:alice", false, 20, 0)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(all))
	}

	unread, err := svc.ListForUser(context.Background(), "user:alice", true, 20, 0)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(unread) != 1 || unread[0].ID != "notification:2" {
		t.Errorf("unexpected unread set: %+v", unread)
	}

	count, err := svc.CountUnread(context.Background(), "user:alice")
	if err != nil {
		t.Fatalf("CountUnread: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unread, got %d", count)
	}
}
