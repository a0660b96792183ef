package model

import "time"

// SummaryHeading carries the patient identity the narrative was built from.
type SummaryHeading struct {
	PatientID   int64  `json:"patient_id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	TotalNotes  int    `json:"total_notes"`
}

// PatientSummary is the on-demand narrative envelope. It is recomputed on
// every request and never persisted.
type PatientSummary struct {
	Heading     SummaryHeading `json:"heading"`
	Summary     string         `json:"summary"`
	GeneratedAt time.Time      `json:"generated_at"`
}
