// Package service implements the business logic layer for the PageTurners API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrClubNotFound = errors.New("club not found")
//	    ErrNotAMember   = errors.New("not a member of this club")
//	)
//
// Failed validation is reported as *ValidationError carrying per-field
// messages; transient store failures surface as ErrUnavailable so the
// handler layer can map them uniformly.
//
// # Concurrency
//
// Membership writes use conditional updates in the store and retry on
// conflict. Reads are retried once after a short backoff; writes are
// never retried blindly, the precondition is re-checked instead.
package service
