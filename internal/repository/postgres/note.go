package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/repository"
)

var noteSortFields = map[string]string{
	"id":         "id",
	"timestamp":  "timestamp",
	"created_at": "created_at",
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	query := `
		INSERT INTO patient_notes (patient_id, content, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, note.PatientID, note.Content, note.Timestamp).
		Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *noteRepository) List(ctx context.Context, patientID int64, filters *model.NoteFilters, page model.Pagination) ([]*model.Note, int, error) {
	countQuery := `SELECT COUNT(*) FROM patient_notes WHERE patient_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, patientID); err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	sortBy := ""
	if filters != nil {
		sortBy = filters.SortBy
	}
	// Newest observation first unless the caller asks otherwise.
	order := orderClause(sortBy, noteSortFields, "timestamp DESC")

	query := fmt.Sprintf(
		"SELECT * FROM patient_notes WHERE patient_id = $1 ORDER BY %s LIMIT $2 OFFSET $3",
		order,
	)

	notes := []*model.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, patientID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, total, nil
}

func (r *noteRepository) Get(ctx context.Context, id int64) (*model.Note, error) {
	query := `SELECT * FROM patient_notes WHERE id = $1`
	var note model.Note
	err := r.db.GetContext(ctx, &note, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) Latest(ctx context.Context, patientID int64, limit int) ([]*model.Note, error) {
	query := `
		SELECT * FROM patient_notes
		WHERE patient_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`
	notes := []*model.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, patientID, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch latest notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM patient_notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *noteRepository) DeleteAllForPatient(ctx context.Context, patientID int64) (int64, error) {
	query := `DELETE FROM patient_notes WHERE patient_id = $1`
	res, err := r.db.ExecContext(ctx, query, patientID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete patient notes: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
