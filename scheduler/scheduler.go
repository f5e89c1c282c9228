// Package scheduler provides one-shot wake-ups for note reminders. Pending
// schedules are persisted so they survive process restarts.
package scheduler

import "time"

// Handler is invoked when a scheduled reminder comes due. It runs outside of
// any user-driven call path and must tolerate the note having been edited,
// trashed or deleted in the meantime.
type Handler func(noteID uint)

// Scheduler keeps at most one pending entry per note. Schedule replaces any
// earlier entry for the same note; Cancel is a no-op when nothing is pending.
type Scheduler interface {
	Schedule(noteID uint, fireAt time.Time) error
	Cancel(noteID uint) error
}
