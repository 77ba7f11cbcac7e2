package dto

import "time"

// EmployeeRequest payload for creating or updating employees. HireDate uses
// the YYYY-MM-DD form the frontend sends.
type EmployeeRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	HireDate   string  `json:"hire_date"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

// EmployeeResponse payload for employee reads.
type EmployeeResponse struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	HireDate   string    `json:"hire_date"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployeeListResponse wraps a page of employees.
type EmployeeListResponse struct {
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
	Employees []EmployeeResponse `json:"employees"`
}
