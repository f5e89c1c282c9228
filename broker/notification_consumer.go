package broker

import (
	"log"

	"mindspace-notes/mindspace/models"
)

// StartNotificationConsumer is the default notification presenter: it logs
// fired reminders. A desktop or mobile shell subscribes to the same subject
// to show real notifications.
func StartNotificationConsumer(url string) (func(), error) {
	return StartConsumer(url, []string{NotificationSubject}, func(subject string, data []byte) {
		var event models.NotificationEvent
		if err := event.FromJSON(data); err != nil {
			log.Printf("Failed to unmarshal notification event: %v", err)
			return
		}

		log.Printf("Reminder for note %d: %s: %s", event.NoteID, event.Title, event.Content)
	})
}
