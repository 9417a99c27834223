// Package repository implements data access for clubs, events,
// notifications and user back-references on top of the database package.
//
// Mutations on the member and attendee arrays are expressed as conditional
// updates: the WHERE clause restates the precondition (current member
// count, absence of the user, non-terminal status) so the store itself
// rejects a write whose precondition went stale. A rejected write surfaces
// as database.ErrConflict and the service layer re-validates.
package repository
