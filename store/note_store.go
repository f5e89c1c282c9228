package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"mindspace-notes/mindspace/database"
	"mindspace-notes/mindspace/models"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"
)

const noteCacheSize = 128

// NoteStore is the durable record store for notes. All mutations go through
// it so that committed changes reach every live-query subscriber.
type NoteStore struct {
	db    *database.Database
	cache *lru.Cache[uint, models.Note]

	mu       sync.RWMutex
	watchers map[uuid.UUID]chan struct{}
}

func NewNoteStore(db *database.Database) (*NoteStore, error) {
	cache, err := lru.New[uint, models.Note](noteCacheSize)
	if err != nil {
		return nil, err
	}
	return &NoteStore{
		db:       db,
		cache:    cache,
		watchers: make(map[uuid.UUID]chan struct{}),
	}, nil
}

// Insert persists a new note and assigns its id. Ids are autoincremented and
// never reused for the lifetime of the database file.
func (s *NoteStore) Insert(ctx context.Context, note *models.Note) error {
	if strings.TrimSpace(note.Title) == "" && strings.TrimSpace(note.Content) == "" {
		return ErrBlankNote
	}
	if err := s.db.DB.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	s.noteChanged(note.ID)
	return nil
}

func (s *NoteStore) GetByID(ctx context.Context, id uint) (models.Note, error) {
	if note, ok := s.cache.Get(id); ok {
		return note, nil
	}

	var note models.Note
	if err := s.db.DB.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, fmt.Errorf("get note %d: %w", id, err)
	}
	s.cache.Add(id, note)
	return note, nil
}

// Update replaces the stored row for note.ID. The id and created_at columns
// are immutable and left untouched. Returns ErrNoteNotFound for unknown ids
// rather than silently inserting.
func (s *NoteStore) Update(ctx context.Context, note *models.Note) error {
	fields := map[string]interface{}{
		"title":         note.Title,
		"content":       note.Content,
		"category":      note.Category,
		"is_favorite":   note.IsFavorite,
		"is_pinned":     note.IsPinned,
		"is_deleted":    note.IsDeleted,
		"deleted_at":    note.DeletedAt,
		"has_reminder":  note.HasReminder,
		"reminder_time": note.ReminderTime,
		"updated_at":    note.UpdatedAt,
	}
	return s.Patch(ctx, note.ID, fields)
}

// Patch applies a partial column update. Timestamps are only touched when the
// caller includes them, so lifecycle transitions can leave updated_at alone.
// Returns ErrNoteNotFound when no row matched.
func (s *NoteStore) Patch(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := s.db.DB.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ?", id).
		UpdateColumns(fields)
	if result.Error != nil {
		return fmt.Errorf("patch note %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	s.noteChanged(id)
	return nil
}

// Delete removes the row permanently. Deleting an absent id is a no-op.
func (s *NoteStore) Delete(ctx context.Context, id uint) error {
	if err := s.db.DB.WithContext(ctx).Delete(&models.Note{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	s.noteChanged(id)
	return nil
}

// DeleteTrashed removes every soft-deleted row.
func (s *NoteStore) DeleteTrashed(ctx context.Context) (int64, error) {
	result := s.db.DB.WithContext(ctx).Delete(&models.Note{}, "is_deleted = ?", true)
	if result.Error != nil {
		return 0, fmt.Errorf("empty trash: %w", result.Error)
	}
	s.storeChanged()
	return result.RowsAffected, nil
}

// DeleteTrashedBefore removes soft-deleted rows whose deleted_at is older
// than cutoff.
func (s *NoteStore) DeleteTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.DB.WithContext(ctx).
		Delete(&models.Note{}, "is_deleted = ? AND deleted_at < ?", true, cutoff)
	if result.Error != nil {
		return 0, fmt.Errorf("purge expired trash: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.storeChanged()
	}
	return result.RowsAffected, nil
}

// ActiveNotes returns non-trashed notes, pinned first, most recently updated
// first within each group.
func (s *NoteStore) ActiveNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.DB.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("is_pinned DESC, updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list active notes: %w", err)
	}
	return notes, nil
}

func (s *NoteStore) FavoriteNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.DB.WithContext(ctx).
		Where("is_deleted = ? AND is_favorite = ?", false, true).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list favorite notes: %w", err)
	}
	return notes, nil
}

func (s *NoteStore) NotesByCategory(ctx context.Context, category string) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.DB.WithContext(ctx).
		Where("is_deleted = ? AND category = ?", false, category).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list notes in category %q: %w", category, err)
	}
	return notes, nil
}

// Search matches query case-insensitively as a substring of title or content.
func (s *NoteStore) Search(ctx context.Context, query string) ([]models.Note, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var notes []models.Note
	err := s.db.DB.WithContext(ctx).
		Where("is_deleted = ? AND (LOWER(title) LIKE ? OR LOWER(content) LIKE ?)",
			false, pattern, pattern).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return notes, nil
}

// TrashNotes returns trashed notes, most recently trashed first.
func (s *NoteStore) TrashNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.DB.WithContext(ctx).
		Where("is_deleted = ?", true).
		Order("deleted_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list trash: %w", err)
	}
	return notes, nil
}

func (s *NoteStore) TrashCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.DB.WithContext(ctx).
		Model(&models.Note{}).
		Where("is_deleted = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count trash: %w", err)
	}
	return count, nil
}

// UpcomingReminders returns active notes with a reminder at or after now,
// soonest first.
func (s *NoteStore) UpcomingReminders(ctx context.Context, now time.Time) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.DB.WithContext(ctx).
		Where("is_deleted = ? AND has_reminder = ? AND reminder_time >= ?", false, true, now).
		Order("reminder_time ASC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming reminders: %w", err)
	}
	return notes, nil
}

func (s *NoteStore) noteChanged(id uint) {
	s.cache.Remove(id)
	s.notifyWatchers()
}

func (s *NoteStore) storeChanged() {
	s.cache.Purge()
	s.notifyWatchers()
}
