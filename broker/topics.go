package broker

const (
	NoteEventsSubject   = "mindspace.note_events"
	NotificationSubject = "mindspace.notification_events"
)
