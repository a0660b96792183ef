package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-notes-api/internal/model"
	"github.com/jwalitptl/patient-notes-api/internal/repository"
)

// nameSimilarityThreshold is the pg_trgm score a patient name must exceed
// to match a fuzzy name filter.
const nameSimilarityThreshold = 0.1

var patientSortFields = map[string]string{
	"id":            "id",
	"name":          "name",
	"date_of_birth": "date_of_birth",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

// orderClause resolves a sort parameter ("field" or "-field") against a
// column whitelist. Unknown fields silently fall back to the default order.
func orderClause(sortBy string, fields map[string]string, fallback string) string {
	if sortBy == "" {
		return fallback
	}
	direction := "ASC"
	name := sortBy
	if strings.HasPrefix(sortBy, "-") {
		direction = "DESC"
		name = sortBy[1:]
	}
	column, ok := fields[name]
	if !ok {
		return fallback
	}
	return column + " " + direction
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters, page model.Pagination) ([]*model.Patient, int, error) {
	where := ""
	args := []interface{}{}
	if filters != nil && filters.Name != "" {
		where = fmt.Sprintf("WHERE similarity(name, $1) > %g", nameSimilarityThreshold)
		args = append(args, filters.Name)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM patients %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	sortBy := ""
	if filters != nil {
		sortBy = filters.SortBy
	}
	order := orderClause(sortBy, patientSortFields, "id ASC")

	query := fmt.Sprintf(
		"SELECT * FROM patients %s ORDER BY %s LIMIT $%d OFFSET $%d",
		where, order, len(args)+1, len(args)+2,
	)
	args = append(args, page.PageSize, page.Offset())

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (name, date_of_birth)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, patient.Name, patient.DateOfBirth).
		Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	sets := []string{}
	args := []interface{}{}
	if req.Name != nil {
		args = append(args, *req.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.DateOfBirth != nil {
		args = append(args, *req.DateOfBirth)
		sets = append(sets, fmt.Sprintf("date_of_birth = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE patients SET %s WHERE id = $%d RETURNING *",
		strings.Join(sets, ", "), len(args),
	)

	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) (bool, error) {
	// Notes go with the patient via the declared FK cascade.
	query := `DELETE FROM patients WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}
