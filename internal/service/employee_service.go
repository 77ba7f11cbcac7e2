package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplehub/hr-service/internal/domain"
	"github.com/peoplehub/hr-service/internal/events"
	"github.com/peoplehub/hr-service/internal/repository"
	apperrors "github.com/peoplehub/hr-service/pkg/util"
)

// EmployeeService coordinates employee record management.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, dispatcher events.Dispatcher) *EmployeeService {
	return &EmployeeService{employees: employees, dispatcher: dispatcher}
}

// EmployeeInput carries the mutable fields of an employee record.
type EmployeeInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	HireDate   time.Time
	Position   string
	Department string
	Salary     float64
}

func (in EmployeeInput) validate() error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return apperrors.NewValidationError("first name, last name and email are required", nil)
	}
	if in.HireDate.IsZero() {
		return apperrors.NewValidationError("hire date is required", nil)
	}
	if in.Salary < 0 {
		return apperrors.NewValidationError("salary must not be negative", nil)
	}
	return nil
}

// Create adds a new employee record.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		HireDate:   input.HireDate,
		Position:   input.Position,
		Department: input.Department,
		Salary:     input.Salary,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventEmployeeCreated,
			Timestamp: time.Now(),
			Payload: events.EmployeeCreatedPayload{
				EmployeeID: employee.ID,
				Email:      employee.Email,
				Department: employee.Department,
			},
		})
	}
	return employee, nil
}

// Update replaces the mutable fields of an existing record.
func (s *EmployeeService) Update(ctx context.Context, id int64, input EmployeeInput) (*domain.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, err
	}

	employee.FirstName = input.FirstName
	employee.LastName = input.LastName
	employee.Email = input.Email
	employee.Phone = input.Phone
	employee.HireDate = input.HireDate
	employee.Position = input.Position
	employee.Department = input.Department
	employee.Salary = input.Salary

	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, err
	}
	return employee, nil
}

// Delete removes an employee record.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// GetByID fetches a single employee record.
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, err
	}
	return employee, nil
}

// List returns a page of employees plus the total matching count.
func (s *EmployeeService) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, int64, error) {
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employees.Count(ctx, filter.Search)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}
