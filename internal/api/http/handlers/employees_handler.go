package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/peoplehub/hr-service/internal/api/dto"
	"github.com/peoplehub/hr-service/internal/domain"
	"github.com/peoplehub/hr-service/internal/repository"
	"github.com/peoplehub/hr-service/internal/service"
	apperrors "github.com/peoplehub/hr-service/pkg/util"
)

const hireDateLayout = "2006-01-02"

// EmployeesHandler exposes employee CRUD endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// Create handles POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	input, err := parseEmployeeInput(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(employee)})
}

// List handles GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)

	filter := repository.EmployeeFilter{
		Search:    c.Query("search"),
		SortField: c.Query("sortField", "firstName"),
		SortOrder: c.Query("sortOrder", "asc"),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	employees, total, err := h.employees.List(c.Context(), filter)
	if err != nil {
		return err
	}

	resp := dto.EmployeeListResponse{
		Total:     total,
		Page:      page,
		Limit:     limit,
		Employees: make([]dto.EmployeeResponse, 0, len(employees)),
	}
	for i := range employees {
		resp.Employees = append(resp.Employees, employeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Update handles PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	input, err := parseEmployeeInput(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Delete handles DELETE /api/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.employees.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid employee id", nil)
	}
	return id, nil
}

func parseEmployeeInput(c *fiber.Ctx) (service.EmployeeInput, error) {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return service.EmployeeInput{}, apperrors.NewValidationError("invalid payload", nil)
	}

	var hireDate time.Time
	if req.HireDate != "" {
		parsed, err := time.Parse(hireDateLayout, req.HireDate)
		if err != nil {
			return service.EmployeeInput{}, apperrors.NewValidationError("hire_date must be YYYY-MM-DD", nil)
		}
		hireDate = parsed
	}

	return service.EmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		HireDate:   hireDate,
		Position:   req.Position,
		Department: req.Department,
		Salary:     req.Salary,
	}, nil
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

func employeeResponse(employee *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         employee.ID,
		FirstName:  employee.FirstName,
		LastName:   employee.LastName,
		Email:      employee.Email,
		Phone:      employee.Phone,
		HireDate:   employee.HireDate.Format(hireDateLayout),
		Position:   employee.Position,
		Department: employee.Department,
		Salary:     employee.Salary,
		CreatedAt:  employee.CreatedAt,
		UpdatedAt:  employee.UpdatedAt,
	}
}
