package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindspace-notes/mindspace/broker"
	"mindspace-notes/mindspace/models"
	"mindspace-notes/mindspace/store"
)

type NoteServiceInterface interface {
	AddNote(ctx context.Context, title, content, category string) (models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNoteByID(ctx context.Context, id uint) (models.Note, error)
	TogglePin(ctx context.Context, id uint, pinned bool) error
	ToggleFavorite(ctx context.Context, id uint, favorite bool) error
	ActiveNotes(ctx context.Context) ([]models.Note, error)
	FavoriteNotes(ctx context.Context) ([]models.Note, error)
	NotesByCategory(ctx context.Context, category string) ([]models.Note, error)
	Search(ctx context.Context, query string) ([]models.Note, error)
}

// NoteService enforces the note business rules on top of the record store.
// Content edits refresh UpdatedAt; lifecycle transitions (trash, restore,
// purge) are owned by TrashService and never touch it.
type NoteService struct {
	store    *store.NoteStore
	producer broker.Producer
	now      func() time.Time
}

func NewNoteService(noteStore *store.NoteStore, producer broker.Producer) *NoteService {
	return &NoteService{
		store:    noteStore,
		producer: producer,
		now:      time.Now,
	}
}

// AddNote creates a note. Title and content must not both be blank; a blank
// title is stored as "Untitled".
func (s *NoteService) AddNote(ctx context.Context, title, content, category string) (models.Note, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return models.Note{}, fmt.Errorf("%w: title and content cannot both be blank", ErrValidation)
	}
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	if strings.TrimSpace(category) == "" {
		category = models.DefaultCategory
	}

	now := s.now()
	note := models.Note{
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Insert(ctx, &note); err != nil {
		return models.Note{}, err
	}

	publishNoteEvent(s.producer, broker.NoteCreated, map[string]interface{}{
		"note_id":    note.ID,
		"title":      note.Title,
		"category":   note.Category,
		"created_at": note.CreatedAt,
	})
	return note, nil
}

// UpdateNote replaces the note's content fields and stamps UpdatedAt.
// Lifecycle and reminder fields are owned by TrashService and ReminderService;
// whatever the caller put there is discarded in favor of the stored values, so
// an edit can neither break the has_reminder/reminder_time pairing nor desync
// the pending schedule.
func (s *NoteService) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if strings.TrimSpace(note.Title) == "" && strings.TrimSpace(note.Content) == "" {
		return models.Note{}, fmt.Errorf("%w: title and content cannot both be blank", ErrValidation)
	}
	if strings.TrimSpace(note.Category) == "" {
		note.Category = models.DefaultCategory
	}

	current, err := s.store.GetByID(ctx, note.ID)
	if err != nil {
		return models.Note{}, err
	}
	note.IsDeleted = current.IsDeleted
	note.DeletedAt = current.DeletedAt
	note.HasReminder = current.HasReminder
	note.ReminderTime = current.ReminderTime

	note.UpdatedAt = s.now()
	if err := s.store.Update(ctx, &note); err != nil {
		return models.Note{}, err
	}

	publishNoteEvent(s.producer, broker.NoteUpdated, map[string]interface{}{
		"note_id":    note.ID,
		"title":      note.Title,
		"updated_at": note.UpdatedAt,
	})
	return s.store.GetByID(ctx, note.ID)
}

func (s *NoteService) GetNoteByID(ctx context.Context, id uint) (models.Note, error) {
	return s.store.GetByID(ctx, id)
}

func (s *NoteService) TogglePin(ctx context.Context, id uint, pinned bool) error {
	return s.toggleFlag(ctx, id, "is_pinned", pinned)
}

func (s *NoteService) ToggleFavorite(ctx context.Context, id uint, favorite bool) error {
	return s.toggleFlag(ctx, id, "is_favorite", favorite)
}

func (s *NoteService) toggleFlag(ctx context.Context, id uint, column string, value bool) error {
	err := s.store.Patch(ctx, id, map[string]interface{}{
		column:       value,
		"updated_at": s.now(),
	})
	if err != nil {
		return err
	}

	publishNoteEvent(s.producer, broker.NoteUpdated, map[string]interface{}{
		"note_id": id,
		column:    value,
	})
	return nil
}

func (s *NoteService) ActiveNotes(ctx context.Context) ([]models.Note, error) {
	return s.store.ActiveNotes(ctx)
}

func (s *NoteService) FavoriteNotes(ctx context.Context) ([]models.Note, error) {
	return s.store.FavoriteNotes(ctx)
}

func (s *NoteService) NotesByCategory(ctx context.Context, category string) ([]models.Note, error) {
	return s.store.NotesByCategory(ctx, category)
}

func (s *NoteService) Search(ctx context.Context, query string) ([]models.Note, error) {
	return s.store.Search(ctx, query)
}
