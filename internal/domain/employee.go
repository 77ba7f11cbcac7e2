package domain

import "time"

// Employee is the domain model for HR employee records.
type Employee struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	HireDate   time.Time
	Position   string
	Department string
	Salary     float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DashboardMetrics summarizes headcount figures for the dashboard.
type DashboardMetrics struct {
	TotalEmployees    int64 `json:"total_employees"`
	NewHiresThisMonth int64 `json:"new_hires_this_month"`
	UpcomingVacations int64 `json:"upcoming_vacations"`
}
