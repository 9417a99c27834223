package repository

import (
	"errors"
	"testing"

	"github.com/pageturners/api/internal/database"
	"github.com/pageturners/api/internal/model"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestConvertID(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string passthrough", "club:1", "club:1"},
		{"record id", surrealmodels.RecordID{Table: "club", ID: "abc"}, "club:abc"},
		{"record id pointer", &surrealmodels.RecordID{Table: "event", ID: "xyz"}, "event:xyz"},
		{"tb map", map[string]interface{}{"tb": "user", "id": "alice"}, "user:alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertID(tt.in); got != tt.want {
				t.Errorf("convertID(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeRecord(t *testing.T) {
	raw := map[string]interface{}{
		"id":     surrealmodels.RecordID{Table: "club", ID: "1"},
		"name":   "Slow Readers",
		"status": "active",
		"members": []interface{}{
			map[string]interface{}{"user_id": "user:alice", "role": "admin"},
		},
	}

	club, err := decodeRecord[model.Club](raw)
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if club.ID != "club:1" || club.Name != "Slow Readers" {
		t.Errorf("unexpected club: %+v", club)
	}
	if len(club.Members) != 1 || club.Members[0].UserID != "user:alice" {
		t.Errorf("members not decoded: %+v", club.Members)
	}
}

func TestDecodeRecordEmpty(t *testing.T) {
	if _, err := decodeRecord[model.Club](nil); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound for nil, got %v", err)
	}
	if _, err := decodeRecord[model.Club]([]interface{}{}); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty slice, got %v", err)
	}
}

func TestUnwrapRecords(t *testing.T) {
	results := []interface{}{
		map[string]interface{}{
			"status": "OK",
			"result": []interface{}{
				map[string]interface{}{"id": "event:1"},
				map[string]interface{}{"id": "event:2"},
			},
		},
	}

	records := unwrapRecords(results)
	if len(records) != 2 {
		t.Errorf("expected 2 unwrapped records, got %d", len(records))
	}
}

func TestExtractCount(t *testing.T) {
	if got := extractCount(map[string]interface{}{"count": float64(7)}); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := extractCount(map[string]interface{}{"count": "oops"}); got != 0 {
		t.Errorf("expected 0 for bad type, got %d", got)
	}
	if got := extractCount("not a map"); got != 0 {
		t.Errorf("expected 0 for non-map, got %d", got)
	}
}
