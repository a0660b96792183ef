package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/repository"
)

func setupMockNoteDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, repository.NoteRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewNoteRepository(sqlxDB)

	return sqlxDB, mock, repo
}

func noteRows(notes ...*model.Note) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "patient_id", "content", "timestamp", "created_at"})
	for _, n := range notes {
		rows.AddRow(n.ID, n.PatientID, n.Content, n.Timestamp, n.CreatedAt)
	}
	return rows
}

func TestNoteCreate(t *testing.T) {
	db, mock, repo := setupMockNoteDB(t)
	defer db.Close()

	ts := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO patient_notes (patient_id, content, timestamp)")).
		WithArgs(int64(3), "BP 120/80, stable", ts).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))

	n := &model.Note{PatientID: 3, Content: "BP 120/80, stable", Timestamp: ts}
	err := repo.Create(context.Background(), n)

	require.NoError(t, err)
	assert.Equal(t, int64(11), n.ID)
	assert.Equal(t, now, n.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteList_DefaultNewestFirst(t *testing.T) {
	db, mock, repo := setupMockNoteDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM patient_notes WHERE patient_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM patient_notes WHERE patient_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3")).
		WithArgs(int64(3), 50, 0).
		WillReturnRows(noteRows(
			&model.Note{ID: 2, PatientID: 3, Content: "later", Timestamp: time.Now(), CreatedAt: time.Now()},
			&model.Note{ID: 1, PatientID: 3, Content: "earlier", Timestamp: time.Now().Add(-time.Hour), CreatedAt: time.Now()},
		))

	page := model.Pagination{Page: 1, PageSize: 50}
	notes, total, err := repo.List(context.Background(), 3, &model.NoteFilters{}, page)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, notes, 2)
	assert.Equal(t, "later", notes[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteList_SortOverride(t *testing.T) {
	db, mock, repo := setupMockNoteDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM patient_notes WHERE patient_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY timestamp ASC")).
		WithArgs(int64(3), 50, 0).
		WillReturnRows(noteRows())

	page := model.Pagination{Page: 1, PageSize: 50}
	_, _, err := repo.List(context.Background(), 3, &model.NoteFilters{SortBy: "timestamp"}, page)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteGet_Absent(t *testing.T) {
	db, mock, repo := setupMockNoteDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM patient_notes WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(noteRows())

	note, err := repo.Get(context.Background(), 404)

	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteLatest(t *testing.T) {
	db, mock, repo := setupMockNoteDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY timestamp DESC")).
		WithArgs(int64(3), 5).
		WillReturnRows(noteRows(
			&model.Note{ID: 9, PatientID: 3, Content: "newest", Timestamp: time.Now(), CreatedAt: time.Now()},
			&model.Note{ID: 8, PatientID: 3, Content: "older", Timestamp: time.Now().Add(-time.Hour), CreatedAt: time.Now()},
		))

	notes, err := repo.Latest(context.Background(), 3, 5)

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "newest", notes[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteDelete_Absent(t *testing.T) {
	db, mock, repo := setupMockNoteDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patient_notes WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 404)

	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNoteDeleteAllForPatient(t *testing.T) {
	db, mock, repo := setupMockNoteDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patient_notes WHERE patient_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.DeleteAllForPatient(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
