// Package model defines the domain entities and request/response types
// for the pageturners API.
//
// The three core entities are:
//   - Club: a reading group with bounded, role-tagged membership
//   - Event: a scheduled club meeting driven through a status state machine
//   - Notification: a per-recipient message created by fan-out
//
// Ownership rules: a Club exclusively owns its members array, an Event
// exclusively owns its attendees array and status. Notifications reference
// clubs and events by id but are never owned by them; those references may
// dangle after a deletion and readers must tolerate that.
package model
