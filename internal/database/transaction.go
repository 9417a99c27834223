package database

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// AtomicBatch accumulates statements and executes them together inside a
// single BEGIN TRANSACTION / COMMIT TRANSACTION block. All statements
// succeed or fail as a unit. Variables are namespaced per statement so
// queries from different call sites can reuse the same variable names.
//
// The club-delete cleanup is the main user: the club document and the
// membership back-references on every former member's user document must
// go together, or a dangling reference is left behind.
type AtomicBatch struct {
	statements []string
	vars       map[string]interface{}
	varCounter uint64
}

// NewAtomicBatch creates an empty batch
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{
		statements: make([]string, 0),
		vars:       make(map[string]interface{}),
	}
}

// Add appends a statement to the batch, namespacing its variables to
// avoid collisions with other statements
func (b *AtomicBatch) Add(query string, vars map[string]interface{}) {
	newQuery := query
	for name, value := range vars {
		counter := atomic.AddUint64(&b.varCounter, 1)
		newName := fmt.Sprintf("v%d_%s", counter, name)
		newQuery = strings.ReplaceAll(newQuery, "$"+name, "$"+newName)
		b.vars[newName] = value
	}
	b.statements = append(b.statements, newQuery)
}

// Len returns the number of accumulated statements
func (b *AtomicBatch) Len() int {
	return len(b.statements)
}

// Build returns the complete transaction query and merged variables
func (b *AtomicBatch) Build() (string, map[string]interface{}) {
	if len(b.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range b.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), b.vars
}

// Execute runs the accumulated statements atomically
func (b *AtomicBatch) Execute(ctx context.Context, db Database) error {
	query, vars := b.Build()
	if query == "" {
		return nil
	}
	return db.Execute(ctx, query, vars)
}
