package models

import (
	"encoding/json"
	"time"
)

// RetentionWindow is how long a trashed note is kept before it becomes
// eligible for permanent deletion.
const RetentionWindow = 30 * 24 * time.Hour

const DefaultCategory = "General"

type Note struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Content      string     `gorm:"not null" json:"content"`
	Category     string     `gorm:"not null;default:'General';index" json:"category"`
	IsFavorite   bool       `gorm:"not null;default:false" json:"is_favorite"`
	IsPinned     bool       `gorm:"not null;default:false" json:"is_pinned"`
	IsDeleted    bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	HasReminder  bool       `gorm:"not null;default:false" json:"has_reminder"`
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// DaysLeftInTrash reports how many whole days remain before a trashed note
// is purged. Returns 0 for notes that are not in the trash or already past
// the retention window.
func (n *Note) DaysLeftInTrash(now time.Time) int {
	if !n.IsDeleted || n.DeletedAt == nil {
		return 0
	}
	remaining := n.DeletedAt.Add(RetentionWindow).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / (24 * time.Hour))
}
