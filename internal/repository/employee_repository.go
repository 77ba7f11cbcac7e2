package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peoplehub/hr-service/internal/domain"
	apperrors "github.com/peoplehub/hr-service/pkg/util"
)

// EmployeeFilter captures list parameters.
type EmployeeFilter struct {
	Search    string
	SortField string
	SortOrder string
	Limit     int
	Offset    int
}

// sortColumns whitelists client-supplied sort fields against real columns.
var sortColumns = map[string]string{
	"id":         "id",
	"firstName":  "first_name",
	"lastName":   "last_name",
	"email":      "email",
	"phone":      "phone",
	"hireDate":   "hire_date",
	"position":   "position",
	"department": "department",
	"salary":     "salary",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// EmployeeRepository encapsulates employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	Count(ctx context.Context, search string) (int64, error)
	CountHiredBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (first_name, last_name, email, phone, hire_date, position, department, salary)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.HireDate,
		employee.Position,
		employee.Department,
		employee.Salary,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewConflict("an employee with this email already exists", nil)
		}
		return err
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET first_name=$1, last_name=$2, email=$3, phone=$4, hire_date=$5,
            position=$6, department=$7, salary=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.HireDate,
		employee.Position,
		employee.Department,
		employee.Salary,
		employee.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewConflict("an employee with this email already exists", nil)
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM employees WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `
        SELECT id, first_name, last_name, email, phone, hire_date, position, department, salary, created_at, updated_at
        FROM employees WHERE id=$1`

	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Phone,
		&employee.HireDate,
		&employee.Position,
		&employee.Department,
		&employee.Salary,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	base := `SELECT id, first_name, last_name, email, phone, hire_date, position, department, salary, created_at, updated_at
             FROM employees`
	clause, args := searchClause(filter.Search)

	column, ok := sortColumns[filter.SortField]
	if !ok {
		column = "first_name"
	}
	order := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		order = "DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		base, clause, column, order, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.FirstName,
			&employee.LastName,
			&employee.Email,
			&employee.Phone,
			&employee.HireDate,
			&employee.Position,
			&employee.Department,
			&employee.Salary,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Count(ctx context.Context, search string) (int64, error) {
	clause, args := searchClause(search)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, clause)

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *employeeRepository) CountHiredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM employees WHERE hire_date >= $1 AND hire_date < $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func searchClause(search string) (string, []any) {
	trimmed := strings.TrimSpace(search)
	if trimmed == "" {
		return "1=1", nil
	}
	pattern := "%" + strings.ToLower(trimmed) + "%"
	clause := `(LOWER(first_name) LIKE $1 OR LOWER(last_name) LIKE $1 OR LOWER(email) LIKE $1
            OR LOWER(position) LIKE $1 OR LOWER(department) LIKE $1)`
	return clause, []any{pattern}
}
