package models

import (
	"encoding/json"
	"time"
)

// NotificationEvent carries a fired reminder to the notification-presentation
// boundary.
type NotificationEvent struct {
	NoteID    uint      `json:"note_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *NotificationEvent) FromJSON(data []byte) error {
	return json.Unmarshal(data, e)
}

func (e *NotificationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
