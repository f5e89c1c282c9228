package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the change-notification payload published to the broker after a
// committed mutation. It is a wire format only and is never persisted.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Event     string          `json:"event"`
	Entity    string          `json:"entity"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func NewEvent(event, entity string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Entity:    entity,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

func (e *Event) FromJSON(data []byte) error {
	return json.Unmarshal(data, e)
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
