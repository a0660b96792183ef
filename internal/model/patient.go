package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Patient is a person record identified by name and date of birth.
// The date of birth is kept as a YYYY-MM-DD string; it is validated at the
// API boundary and never re-checked by the store.
type Patient struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DateOfBirth string    `db:"date_of_birth" json:"date_of_birth"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
}

// UpdatePatientRequest carries a partial update: only non-nil fields change.
type UpdatePatientRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	DateOfBirth *string `json:"date_of_birth"`
}

// PatientFilters controls listing order and fuzzy name search.
type PatientFilters struct {
	SortBy string `form:"sort"`
	Name   string `form:"name"`
}

var dobPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeName collapses internal whitespace runs to single spaces and
// trims the ends. Stored names never carry repeated or edge whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ValidateDateOfBirth checks the YYYY-MM-DD format and that each date part
// falls in its allowed range. Each violation reports a distinct message.
func ValidateDateOfBirth(dob string) error {
	if !dobPattern.MatchString(dob) {
		return fmt.Errorf("date_of_birth must be in YYYY-MM-DD format")
	}

	var year, month, day int
	fmt.Sscanf(dob, "%d-%d-%d", &year, &month, &day)

	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("day must be between 1 and 31")
	}
	currentYear := time.Now().Year()
	if year < 1900 || year > currentYear {
		return fmt.Errorf("year must be between 1900 and %d", currentYear)
	}
	return nil
}
