package store

import (
	"context"
	"log"
	"time"

	"mindspace-notes/mindspace/models"

	"github.com/google/uuid"
)

// Subscription is a live query handle. C delivers a fresh snapshot after
// every committed store mutation; rapid successive writes coalesce so a slow
// consumer only ever sees the latest state. Unsubscribe releases the
// subscription and closes C.
type Subscription[T any] struct {
	C <-chan T

	id    uuid.UUID
	store *NoteStore
	done  chan struct{}
}

func (sub *Subscription[T]) Unsubscribe() {
	sub.store.mu.Lock()
	defer sub.store.mu.Unlock()
	if _, ok := sub.store.watchers[sub.id]; !ok {
		return
	}
	delete(sub.store.watchers, sub.id)
	close(sub.done)
}

func newSubscription[T any](s *NoteStore, query func(ctx context.Context) (T, error)) *Subscription[T] {
	id := uuid.New()
	dirty := make(chan struct{}, 1)
	dirty <- struct{}{} // deliver an initial snapshot
	out := make(chan T, 1)
	done := make(chan struct{})

	s.mu.Lock()
	s.watchers[id] = dirty
	s.mu.Unlock()

	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case <-dirty:
				result, err := query(context.Background())
				if err != nil {
					log.Printf("Live query failed: %v", err)
					continue
				}
				// Replace any undelivered snapshot with the newer one.
				select {
				case <-out:
				default:
				}
				select {
				case out <- result:
				case <-done:
					return
				}
			}
		}
	}()

	return &Subscription[T]{C: out, id: id, store: s, done: done}
}

// notifyWatchers marks every subscription dirty. The per-subscription dirty
// channel has capacity one, which coalesces bursts of writes into a single
// re-query.
func (s *NoteStore) notifyWatchers() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, dirty := range s.watchers {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}
}

func (s *NoteStore) WatchActiveNotes() *Subscription[[]models.Note] {
	return newSubscription(s, s.ActiveNotes)
}

func (s *NoteStore) WatchFavoriteNotes() *Subscription[[]models.Note] {
	return newSubscription(s, s.FavoriteNotes)
}

func (s *NoteStore) WatchNotesByCategory(category string) *Subscription[[]models.Note] {
	return newSubscription(s, func(ctx context.Context) ([]models.Note, error) {
		return s.NotesByCategory(ctx, category)
	})
}

func (s *NoteStore) WatchSearch(query string) *Subscription[[]models.Note] {
	return newSubscription(s, func(ctx context.Context) ([]models.Note, error) {
		return s.Search(ctx, query)
	})
}

func (s *NoteStore) WatchTrashNotes() *Subscription[[]models.Note] {
	return newSubscription(s, s.TrashNotes)
}

func (s *NoteStore) WatchTrashCount() *Subscription[int64] {
	return newSubscription(s, s.TrashCount)
}

func (s *NoteStore) WatchUpcomingReminders() *Subscription[[]models.Note] {
	return newSubscription(s, func(ctx context.Context) ([]models.Note, error) {
		return s.UpcomingReminders(ctx, time.Now())
	})
}
