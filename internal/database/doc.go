// Package database provides the document-store abstraction for pageturners.
//
// The Database interface wraps SurrealDB with three query methods:
//   - Query: returns multiple results (SELECT queries returning lists)
//   - QueryOne: returns a single result (SELECT by id)
//   - Execute: no return value (fire-and-forget mutations)
//
// Conditional updates are the concurrency primitive of this service:
// repositories issue UPDATE statements whose WHERE clause re-checks the
// precondition (member count, absence of a duplicate entry, non-terminal
// status) against the freshest persisted state. A conditional update that
// matches no document is reported as ErrConflict, and the caller decides
// whether to retry or fail cleanly. There is no application-level lock.
//
// Multi-statement atomicity (the club-delete cleanup) uses AtomicBatch,
// which accumulates statements and executes them inside a single
// BEGIN TRANSACTION / COMMIT TRANSACTION block. Statements accumulate in
// memory; there is no isolation between Add calls.
//
// Standard errors:
//   - ErrNotFound: record does not exist
//   - ErrDuplicate: unique constraint violation
//   - ErrConflict: conditional update matched no document
//   - ErrConnection: connection failure
//   - ErrQuery: query execution failure
//
// Check them with errors.Is:
//
//	if errors.Is(err, database.ErrConflict) {
//	    // lost the race, re-validate and retry
//	}
package database
