package services

import (
	"log"

	"mindspace-notes/mindspace/broker"
	"mindspace-notes/mindspace/models"
)

type NotificationServiceInterface interface {
	PublishNotification(event models.NotificationEvent) error
}

// NotificationService forwards fired reminders to the notification subject,
// where the presentation layer (or the default logging consumer) picks them
// up.
type NotificationService struct {
	producer broker.Producer
}

func NewNotificationService(producer broker.Producer) *NotificationService {
	return &NotificationService{producer: producer}
}

func (s *NotificationService) PublishNotification(event models.NotificationEvent) error {
	payload, err := event.ToJSON()
	if err != nil {
		return err
	}

	log.Printf("Notifying: note %d, %q", event.NoteID, event.Title)
	return s.producer.PublishMessage(broker.NotificationSubject, payload)
}
