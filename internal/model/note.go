package model

import "time"

// Note is a timestamped free-text clinical observation attached to a patient.
// Timestamp records when the observation was made; CreatedAt is assigned by
// the server on insert.
type Note struct {
	ID        int64     `db:"id" json:"id"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	Content   string    `db:"content" json:"content"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateNoteRequest struct {
	Content   string    `json:"content" binding:"required,min=1,max=10000"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

// UpdateNoteRequest exists for parity with the create/read schemas but is
// not wired to any route; notes are never updated in place.
type UpdateNoteRequest struct {
	Content   *string    `json:"content" binding:"omitempty,min=1,max=10000"`
	Timestamp *time.Time `json:"timestamp"`
}

// NoteFilters controls listing order.
type NoteFilters struct {
	SortBy string `form:"sort"`
}
