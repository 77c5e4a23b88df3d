package student

import "time"

// Student represents one enrolled student record on the dashboard.
type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	Program        string    `json:"program"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	GPA            float64   `json:"gpa"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Lifecycle states for a student record.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusGraduated = "graduated"
)

// Statuses lists every valid student status.
var Statuses = []string{StatusActive, StatusInactive, StatusGraduated}

// Filter holds the parameters for a paginated student search.
type Filter struct {
	Query  string // Matches name and email, case-insensitive
	Status string // Exact status, empty for all
}

// Overview aggregates the student population for the dashboard header cards.
type Overview struct {
	Total      int     `json:"total"`
	Active     int     `json:"active"`
	Inactive   int     `json:"inactive"`
	Graduated  int     `json:"graduated"`
	AverageGPA float64 `json:"average_gpa"`
}

// Global field names for validation
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldStatus         = "status"
	FieldProgram        = "program"
	FieldEnrollmentDate = "enrollment_date"
	FieldGPA            = "gpa"
)
