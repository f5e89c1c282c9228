package store

import (
	"context"
	"testing"

	"mindspace-notes/mindspace/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueriesPropagateDriverErrors(t *testing.T) {
	db, mock, cleanup := testutils.SetupMockDB()
	defer cleanup()
	s, err := NewNoteStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM "notes"`).WillReturnError(assert.AnError)
	_, err = s.ActiveNotes(ctx)
	assert.ErrorContains(t, err, "list active notes")

	mock.ExpectQuery(`SELECT count(.+) FROM "notes"`).WillReturnError(assert.AnError)
	_, err = s.TrashCount(ctx)
	assert.ErrorContains(t, err, "count trash")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDServesSecondReadFromCache(t *testing.T) {
	db, mock, cleanup := testutils.SetupMockDB()
	defer cleanup()
	s, err := NewNoteStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	rows := mock.NewRows([]string{"id", "title", "content"}).
		AddRow(1, "Cached", "body")
	mock.ExpectQuery(`SELECT (.+) FROM "notes"`).WillReturnRows(rows)

	first, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cached", first.Title)

	// No second query is expected; the cached copy is returned.
	second, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}
