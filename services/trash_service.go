package services

import (
	"context"
	"errors"
	"log"
	"time"

	"mindspace-notes/mindspace/broker"
	"mindspace-notes/mindspace/models"
	"mindspace-notes/mindspace/scheduler"
	"mindspace-notes/mindspace/store"

	"github.com/sethvargo/go-retry"
)

const sweepMaxRetries = 3

type TrashServiceInterface interface {
	MoveToTrash(ctx context.Context, id uint) error
	RestoreFromTrash(ctx context.Context, id uint) error
	DeletePermanently(ctx context.Context, id uint) error
	EmptyTrash(ctx context.Context) error
	TrashNotes(ctx context.Context) ([]models.Note, error)
	TrashCount(ctx context.Context) (int64, error)
	CleanupExpired(ctx context.Context, now time.Time) (int64, error)
}

// TrashService owns the Active -> Trashed -> Gone state machine. Trashing and
// restoring are bookkeeping transitions: they record deleted_at but never
// touch updated_at, so a restored note keeps its place in the active
// ordering.
type TrashService struct {
	store     *store.NoteStore
	producer  broker.Producer
	scheduler scheduler.Scheduler
	now       func() time.Time
}

func NewTrashService(noteStore *store.NoteStore, producer broker.Producer, sched scheduler.Scheduler) *TrashService {
	return &TrashService{
		store:     noteStore,
		producer:  producer,
		scheduler: sched,
		now:       time.Now,
	}
}

// MoveToTrash soft-deletes a note. Already-trashed and absent notes are
// successful no-ops.
func (s *TrashService) MoveToTrash(ctx context.Context, id uint) error {
	note, err := s.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if note.IsDeleted {
		return nil
	}

	deletedAt := s.now()
	err = s.store.Patch(ctx, id, map[string]interface{}{
		"is_deleted": true,
		"deleted_at": deletedAt,
	})
	if errors.Is(err, store.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	publishNoteEvent(s.producer, broker.NoteTrashed, map[string]interface{}{
		"note_id":    id,
		"deleted_at": deletedAt,
	})
	return nil
}

// RestoreFromTrash returns a note to the active set. Its stored updated_at
// and pin state determine where it reappears in the active ordering.
func (s *TrashService) RestoreFromTrash(ctx context.Context, id uint) error {
	note, err := s.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !note.IsDeleted {
		return nil
	}

	err = s.store.Patch(ctx, id, map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
	})
	if errors.Is(err, store.ErrNoteNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	publishNoteEvent(s.producer, broker.NoteRestored, map[string]interface{}{
		"note_id": id,
	})
	return nil
}

// DeletePermanently removes the row for good. Idempotent: deleting an absent
// or never-existing id succeeds.
func (s *TrashService) DeletePermanently(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.scheduler.Cancel(id); err != nil {
		log.Printf("Failed to cancel reminder schedule for purged note %d: %v", id, err)
	}

	publishNoteEvent(s.producer, broker.NotePurged, map[string]interface{}{
		"note_id": id,
	})
	return nil
}

func (s *TrashService) EmptyTrash(ctx context.Context) error {
	count, err := s.store.DeleteTrashed(ctx)
	if err != nil {
		return err
	}

	publishNoteEvent(s.producer, broker.TrashEmptied, map[string]interface{}{
		"purged": count,
	})
	return nil
}

func (s *TrashService) TrashNotes(ctx context.Context) ([]models.Note, error) {
	return s.store.TrashNotes(ctx)
}

func (s *TrashService) TrashCount(ctx context.Context) (int64, error) {
	return s.store.TrashCount(ctx)
}

// CleanupExpired purges trashed notes whose retention window has elapsed and
// reports how many rows were removed.
func (s *TrashService) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.store.DeleteTrashedBefore(ctx, now.Add(-models.RetentionWindow))
}

// RunSweep is the background retention sweep, run at startup and then
// periodically. Failures are retried with backoff and logged; they never
// propagate to the caller.
func (s *TrashService) RunSweep(ctx context.Context) {
	backoff := retry.WithMaxRetries(sweepMaxRetries, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		count, err := s.CleanupExpired(ctx, s.now())
		if err != nil {
			return retry.RetryableError(err)
		}
		if count > 0 {
			log.Printf("Trash sweep purged %d expired note(s)", count)
			publishNoteEvent(s.producer, broker.TrashSwept, map[string]interface{}{
				"purged": count,
			})
		}
		return nil
	})
	if err != nil {
		log.Printf("Trash sweep failed, will try again next interval: %v", err)
	}
}
