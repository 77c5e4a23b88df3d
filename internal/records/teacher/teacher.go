package teacher

import "time"

// Teacher represents one faculty record on the dashboard.
type Teacher struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	Department string    `json:"department"`
	HireDate   time.Time `json:"hire_date"`
	Rating     float64   `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Lifecycle states for a teacher record.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on-leave"
)

// Statuses lists every valid teacher status.
var Statuses = []string{StatusActive, StatusInactive, StatusOnLeave}

// Filter holds the parameters for a paginated teacher search.
type Filter struct {
	Query  string // Matches name and email, case-insensitive
	Status string // Exact status, empty for all
}

// Overview aggregates the faculty for the dashboard header cards.
type Overview struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Inactive      int     `json:"inactive"`
	OnLeave       int     `json:"on_leave"`
	AverageRating float64 `json:"average_rating"`
}

// Global field names for validation
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldStatus     = "status"
	FieldDepartment = "department"
	FieldHireDate   = "hire_date"
	FieldRating     = "rating"
)
