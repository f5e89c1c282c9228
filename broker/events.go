package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	NoteCreated  EventType = "note.created"
	NoteUpdated  EventType = "note.updated"
	NoteTrashed  EventType = "note.trashed"
	NoteRestored EventType = "note.restored"
	NotePurged   EventType = "note.purged"

	TrashEmptied EventType = "trash.emptied"
	TrashSwept   EventType = "trash.swept"

	ReminderSet       EventType = "reminder.set"
	ReminderCancelled EventType = "reminder.cancelled"
	ReminderFired     EventType = "reminder.fired"
)
