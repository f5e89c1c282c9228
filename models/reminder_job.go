package models

import "time"

// ReminderJob is the durable scheduler queue. One row per pending reminder;
// rescheduling a note replaces its row, firing or cancelling removes it.
type ReminderJob struct {
	NoteID uint      `gorm:"primaryKey" json:"note_id"`
	FireAt time.Time `gorm:"not null;index" json:"fire_at"`
}
