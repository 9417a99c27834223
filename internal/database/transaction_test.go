package database

import (
	"strings"
	"testing"
)

func TestAtomicBatchBuild(t *testing.T) {
	batch := NewAtomicBatch()
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": "club:1"})
	batch.Add(`UPDATE type::record($id) SET clubs_joined -= $club_id`, map[string]interface{}{
		"id":      "user:alice",
		"club_id": "club:1",
	})

	if batch.Len() != 2 {
		t.Fatalf("expected 2 statements, got %d", batch.Len())
	}

	query, vars := batch.Build()

	if !strings.HasPrefix(query, "BEGIN TRANSACTION;") {
		t.Error("transaction must open with BEGIN")
	}
	if !strings.HasSuffix(query, "COMMIT TRANSACTION;") {
		t.Error("transaction must close with COMMIT")
	}
	if len(vars) != 3 {
		t.Errorf("expected 3 namespaced vars, got %d: %v", len(vars), vars)
	}
	// Both statements bind an $id; namespacing must keep them distinct
	if strings.Count(query, "$v") < 3 {
		t.Errorf("variables not namespaced: %s", query)
	}
}

func TestAtomicBatchEmpty(t *testing.T) {
	batch := NewAtomicBatch()
	query, vars := batch.Build()
	if query != "" || vars != nil {
		t.Errorf("empty batch must build nothing, got %q %v", query, vars)
	}
}
