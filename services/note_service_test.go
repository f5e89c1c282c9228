package services

import (
	"context"
	"testing"
	"time"

	"mindspace-notes/mindspace/broker"
	"mindspace-notes/mindspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNoteAppliesDefaults(t *testing.T) {
	producer := newFakeProducer()
	svc := NewNoteService(newServiceStore(t), producer)
	ctx := context.Background()

	note, err := svc.AddNote(ctx, "  ", "some content", "")
	require.NoError(t, err)
	assert.Equal(t, "Untitled", note.Title)
	assert.Equal(t, models.DefaultCategory, note.Category)
	assert.NotZero(t, note.ID)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)

	assert.Contains(t, producer.eventTypes(t, broker.NoteEventsSubject), string(broker.NoteCreated))
}

func TestAddNoteRejectsBlank(t *testing.T) {
	svc := NewNoteService(newServiceStore(t), nil)

	_, err := svc.AddNote(context.Background(), "   ", "", "Work")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateNoteStampsUpdatedAt(t *testing.T) {
	svc := NewNoteService(newServiceStore(t), nil)
	ctx := context.Background()

	note, err := svc.AddNote(ctx, "Draft", "v1", "Work")
	require.NoError(t, err)

	editTime := note.UpdatedAt.Add(time.Hour)
	svc.now = func() time.Time { return editTime }

	note.Content = "v2"
	updated, err := svc.UpdateNote(ctx, note)
	require.NoError(t, err)
	assert.WithinDuration(t, editTime, updated.UpdatedAt, time.Second)

	got, err := svc.GetNoteByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
	assert.WithinDuration(t, editTime, got.UpdatedAt, time.Second)
}

func TestUpdateNoteRejectsBlank(t *testing.T) {
	svc := NewNoteService(newServiceStore(t), nil)
	ctx := context.Background()

	note, err := svc.AddNote(ctx, "Draft", "body", "")
	require.NoError(t, err)

	note.Title = "  "
	note.Content = ""
	_, err = svc.UpdateNote(ctx, note)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateNoteKeepsLifecycleAndReminderFields(t *testing.T) {
	noteStore := newServiceStore(t)
	svc := NewNoteService(noteStore, nil)
	ctx := context.Background()

	note, err := svc.AddNote(ctx, "Meeting", "standup", "")
	require.NoError(t, err)

	fireAt := time.Now().Add(time.Hour)
	require.NoError(t, noteStore.Patch(ctx, note.ID, map[string]interface{}{
		"has_reminder":  true,
		"reminder_time": fireAt,
	}))

	// An edit carrying inconsistent reminder fields must not persist them.
	note.Content = "standup moved"
	note.HasReminder = true
	note.ReminderTime = nil
	updated, err := svc.UpdateNote(ctx, note)
	require.NoError(t, err)

	assert.True(t, updated.HasReminder)
	require.NotNil(t, updated.ReminderTime)
	assert.WithinDuration(t, fireAt, *updated.ReminderTime, time.Second)

	got, err := svc.GetNoteByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "standup moved", got.Content)
	assert.Equal(t, got.HasReminder, got.ReminderTime != nil)
	require.NotNil(t, got.ReminderTime)
	assert.WithinDuration(t, fireAt, *got.ReminderTime, time.Second)

	// Trash state is equally off limits to an edit.
	require.NoError(t, noteStore.Patch(ctx, note.ID, map[string]interface{}{
		"is_deleted": true,
		"deleted_at": time.Now(),
	}))
	note.IsDeleted = false
	note.DeletedAt = nil
	_, err = svc.UpdateNote(ctx, note)
	require.NoError(t, err)

	got, err = svc.GetNoteByID(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	assert.NotNil(t, got.DeletedAt)
}

func TestUpdateNoteReturnsStoredRow(t *testing.T) {
	svc := NewNoteService(newServiceStore(t), nil)
	ctx := context.Background()

	note, err := svc.AddNote(ctx, "Draft", "body", "")
	require.NoError(t, err)

	// A sparse edit payload, as an HTTP client would send it.
	edit := models.Note{ID: note.ID, Title: "Edited", Content: "body"}
	updated, err := svc.UpdateNote(ctx, edit)
	require.NoError(t, err)

	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, models.DefaultCategory, updated.Category)
	assert.WithinDuration(t, note.CreatedAt, updated.CreatedAt, time.Second)
	assert.False(t, updated.CreatedAt.IsZero())
}

func TestUpdateNoteUnknownID(t *testing.T) {
	svc := NewNoteService(newServiceStore(t), nil)

	_, err := svc.UpdateNote(context.Background(), models.Note{ID: 777, Title: "Ghost"})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestTogglePinAndFavorite(t *testing.T) {
	svc := NewNoteService(newServiceStore(t), nil)
	ctx := context.Background()

	note, err := svc.AddNote(ctx, "Flags", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.TogglePin(ctx, note.ID, true))
	require.NoError(t, svc.ToggleFavorite(ctx, note.ID, true))

	got, err := svc.GetNoteByID(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPinned)
	assert.True(t, got.IsFavorite)

	require.NoError(t, svc.TogglePin(ctx, note.ID, false))
	got, err = svc.GetNoteByID(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPinned)
	assert.True(t, got.IsFavorite)
}

func TestToggleUnknownID(t *testing.T) {
	svc := NewNoteService(newServiceStore(t), nil)

	assert.ErrorIs(t, svc.TogglePin(context.Background(), 404, true), ErrNoteNotFound)
	assert.ErrorIs(t, svc.ToggleFavorite(context.Background(), 404, true), ErrNoteNotFound)
}

func TestNoteQueriesFilterTrash(t *testing.T) {
	noteStore := newServiceStore(t)
	producer := newFakeProducer()
	svc := NewNoteService(noteStore, producer)
	trashSvc := NewTrashService(noteStore, producer, newFakeScheduler())
	ctx := context.Background()

	visible, err := svc.AddNote(ctx, "Visible", "", "Work")
	require.NoError(t, err)
	hidden, err := svc.AddNote(ctx, "Hidden", "", "Work")
	require.NoError(t, err)
	require.NoError(t, trashSvc.MoveToTrash(ctx, hidden.ID))

	active, err := svc.ActiveNotes(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, visible.ID, active[0].ID)

	byCategory, err := svc.NotesByCategory(ctx, "Work")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	found, err := svc.Search(ctx, "hidden")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	producer := newFakeProducer()
	producer.err = assert.AnError
	svc := NewNoteService(newServiceStore(t), producer)

	_, err := svc.AddNote(context.Background(), "Resilient", "", "")
	assert.NoError(t, err)
}
