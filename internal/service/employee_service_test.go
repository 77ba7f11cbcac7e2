package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peoplehub/hr-service/internal/domain"
	"github.com/peoplehub/hr-service/internal/events"
	"github.com/peoplehub/hr-service/internal/repository"
	"github.com/peoplehub/hr-service/internal/service"
)

type memEmployeeRepo struct {
	nextID    int64
	employees map[int64]*domain.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{nextID: 1, employees: make(map[int64]*domain.Employee)}
}

func (m *memEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	employee.ID = m.nextID
	m.nextID++
	stored := *employee
	m.employees[stored.ID] = &stored
	return nil
}

func (m *memEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	if _, ok := m.employees[employee.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *employee
	m.employees[stored.ID] = &stored
	return nil
}

func (m *memEmployeeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.employees, id)
	return nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	employee, ok := m.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *employee
	return &copied, nil
}

func (m *memEmployeeRepo) List(_ context.Context, _ repository.EmployeeFilter) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(m.employees))
	for _, employee := range m.employees {
		out = append(out, *employee)
	}
	return out, nil
}

func (m *memEmployeeRepo) Count(_ context.Context, _ string) (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *memEmployeeRepo) CountHiredBetween(_ context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, employee := range m.employees {
		if !employee.HireDate.Before(from) && employee.HireDate.Before(to) {
			count++
		}
	}
	return count, nil
}

func validEmployeeInput() service.EmployeeInput {
	return service.EmployeeInput{
		FirstName:  "Maria",
		LastName:   "Silva",
		Email:      "maria.silva@example.com",
		Phone:      "555-0100",
		HireDate:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		Position:   "Analyst",
		Department: "Finance",
		Salary:     4200,
	}
}

func TestEmployeeCreate_PublishesEvent(t *testing.T) {
	repo := newMemEmployeeRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventEmployeeCreated, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	svc := service.NewEmployeeService(repo, dispatcher)
	employee, err := svc.Create(context.Background(), validEmployeeInput())
	require.NoError(t, err)
	require.EqualValues(t, 1, employee.ID)
	require.Len(t, received, 1)
	require.Equal(t, events.EventEmployeeCreated, received[0].Type)
}

func TestEmployeeCreate_Validation(t *testing.T) {
	svc := service.NewEmployeeService(newMemEmployeeRepo(), nil)

	missingName := validEmployeeInput()
	missingName.FirstName = ""
	_, err := svc.Create(context.Background(), missingName)
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	noHireDate := validEmployeeInput()
	noHireDate.HireDate = time.Time{}
	_, err = svc.Create(context.Background(), noHireDate)
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	negativeSalary := validEmployeeInput()
	negativeSalary.Salary = -1
	_, err = svc.Create(context.Background(), negativeSalary)
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestEmployeeGetUpdateDelete_NotFound(t *testing.T) {
	svc := service.NewEmployeeService(newMemEmployeeRepo(), nil)

	_, err := svc.GetByID(context.Background(), 42)
	require.Equal(t, "NOT_FOUND", errCode(t, err))

	_, err = svc.Update(context.Background(), 42, validEmployeeInput())
	require.Equal(t, "NOT_FOUND", errCode(t, err))

	err = svc.Delete(context.Background(), 42)
	require.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestEmployeeUpdate_ReplacesFields(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := service.NewEmployeeService(repo, nil)

	created, err := svc.Create(context.Background(), validEmployeeInput())
	require.NoError(t, err)

	updated := validEmployeeInput()
	updated.Position = "Senior Analyst"
	updated.Salary = 5100

	employee, err := svc.Update(context.Background(), created.ID, updated)
	require.NoError(t, err)
	require.Equal(t, "Senior Analyst", employee.Position)
	require.EqualValues(t, 5100, employee.Salary)
}

func TestDashboardMetrics_ComputedFromRepository(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := service.NewEmployeeService(repo, nil)

	now := time.Now()
	thisMonth := validEmployeeInput()
	thisMonth.HireDate = time.Date(now.Year(), now.Month(), 2, 0, 0, 0, 0, time.UTC)

	lastYear := validEmployeeInput()
	lastYear.Email = "joao.souza@example.com"
	lastYear.HireDate = now.AddDate(-1, 0, 0)

	_, err := svc.Create(context.Background(), thisMonth)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), lastYear)
	require.NoError(t, err)

	dashboard := service.NewDashboardService(repo, nil, zap.NewNop())
	metrics, err := dashboard.Metrics(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, metrics.TotalEmployees)
	require.EqualValues(t, 1, metrics.NewHiresThisMonth)
	require.EqualValues(t, 0, metrics.UpcomingVacations)
}

func TestEmployeeList_ReturnsTotal(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := service.NewEmployeeService(repo, nil)

	first := validEmployeeInput()
	second := validEmployeeInput()
	second.Email = "joao.souza@example.com"
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	employees, total, err := svc.List(context.Background(), repository.EmployeeFilter{Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, employees, 2)
}
