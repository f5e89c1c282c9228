package services

import (
	"log"

	"mindspace-notes/mindspace/broker"
	"mindspace-notes/mindspace/models"
)

// publishNoteEvent announces a committed mutation on the note events subject.
// Publication is best effort and never fails the triggering operation.
func publishNoteEvent(producer broker.Producer, eventType broker.EventType, data interface{}) {
	if producer == nil {
		return
	}

	event, err := models.NewEvent(string(eventType), "note", data)
	if err != nil {
		log.Printf("Failed to build %s event: %v", eventType, err)
		return
	}

	payload, err := event.ToJSON()
	if err != nil {
		log.Printf("Failed to encode %s event: %v", eventType, err)
		return
	}

	if err := producer.PublishMessage(broker.NoteEventsSubject, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
