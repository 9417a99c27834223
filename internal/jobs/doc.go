// Package jobs contains the background processors. Each processor owns
// a goroutine driven by a ticker and stops cleanly via Stop; RunOnce
// exposes a single pass for tests and manual triggers.
package jobs
