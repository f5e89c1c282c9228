package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mindspace-notes/mindspace/broker"
	"mindspace-notes/mindspace/models"
	"mindspace-notes/mindspace/scheduler"
	"mindspace-notes/mindspace/store"
)

// Fallback strings for notifications on notes with a blank title or content.
const (
	defaultReminderTitle   = "MindSpace Reminder"
	defaultReminderContent = "You have a note reminder"
)

type ReminderServiceInterface interface {
	SetReminder(ctx context.Context, id uint, fireAt time.Time) (models.Note, error)
	CancelReminder(ctx context.Context, id uint) error
	Deliver(ctx context.Context, id uint)
	UpcomingReminders(ctx context.Context) ([]models.Note, error)
}

// ReminderService ties reminder fields on the note to the scheduler's
// pending-job queue and drives delivery when a job fires.
type ReminderService struct {
	store     *store.NoteStore
	notifier  NotificationServiceInterface
	scheduler scheduler.Scheduler
	producer  broker.Producer
	now       func() time.Time
}

func NewReminderService(noteStore *store.NoteStore, notifier NotificationServiceInterface, sched scheduler.Scheduler, producer broker.Producer) *ReminderService {
	return &ReminderService{
		store:     noteStore,
		notifier:  notifier,
		scheduler: sched,
		producer:  producer,
		now:       time.Now,
	}
}

// SetReminder stores the reminder on the note and schedules the wake-up.
// fireAt must be in the future.
func (s *ReminderService) SetReminder(ctx context.Context, id uint, fireAt time.Time) (models.Note, error) {
	now := s.now()
	if !fireAt.After(now) {
		return models.Note{}, fmt.Errorf("%w: reminder time must be in the future", ErrValidation)
	}

	err := s.store.Patch(ctx, id, map[string]interface{}{
		"has_reminder":  true,
		"reminder_time": fireAt,
		"updated_at":    now,
	})
	if err != nil {
		return models.Note{}, err
	}

	if err := s.scheduler.Schedule(id, fireAt); err != nil {
		return models.Note{}, err
	}

	publishNoteEvent(s.producer, broker.ReminderSet, map[string]interface{}{
		"note_id":       id,
		"reminder_time": fireAt,
	})
	return s.store.GetByID(ctx, id)
}

// CancelReminder clears the reminder fields and drops any pending schedule.
// Cancelling a note with no reminder, or an absent note, is a no-op.
func (s *ReminderService) CancelReminder(ctx context.Context, id uint) error {
	err := s.store.Patch(ctx, id, map[string]interface{}{
		"has_reminder":  false,
		"reminder_time": nil,
		"updated_at":    s.now(),
	})
	if err != nil && !errors.Is(err, store.ErrNoteNotFound) {
		return err
	}

	if err := s.scheduler.Cancel(id); err != nil {
		return err
	}

	publishNoteEvent(s.producer, broker.ReminderCancelled, map[string]interface{}{
		"note_id": id,
	})
	return nil
}

// Deliver runs when a scheduled wake-up fires. It emits the notification and
// clears the note's reminder fields; the two side effects are independent and
// best effort. A note that is absent, or whose reminder was already cleared
// by a racing cancel, is a silent no-op.
func (s *ReminderService) Deliver(ctx context.Context, id uint) {
	note, err := s.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNoteNotFound) {
		return
	}
	if err != nil {
		log.Printf("Reminder delivery: failed to load note %d: %v", id, err)
		return
	}
	if !note.HasReminder {
		return
	}

	title := note.Title
	if title == "" {
		title = defaultReminderTitle
	}
	content := note.Content
	if content == "" {
		content = defaultReminderContent
	}

	notification := models.NotificationEvent{
		NoteID:    note.ID,
		Title:     title,
		Content:   content,
		Timestamp: s.now(),
	}
	if err := s.notifier.PublishNotification(notification); err != nil {
		log.Printf("Reminder delivery: failed to notify for note %d: %v", id, err)
	}

	// Clearing must happen even when the notification fails, otherwise a
	// rescheduled job would fire twice.
	err = s.store.Patch(ctx, id, map[string]interface{}{
		"has_reminder":  false,
		"reminder_time": nil,
		"updated_at":    s.now(),
	})
	if err != nil && !errors.Is(err, store.ErrNoteNotFound) {
		log.Printf("Reminder delivery: failed to clear reminder on note %d: %v", id, err)
	}

	publishNoteEvent(s.producer, broker.ReminderFired, map[string]interface{}{
		"note_id": id,
	})
}

func (s *ReminderService) UpcomingReminders(ctx context.Context) ([]models.Note, error) {
	return s.store.UpcomingReminders(ctx, s.now())
}
