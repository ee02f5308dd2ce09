package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
)

// EmployeeService interface for the registration service
type EmployeeService interface {
	Register(ctx context.Context, input service.RegisterInput) (*domain.Employee, error)
	CheckAvailability(ctx context.Context, employeeID string) (bool, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// EmployeeHandler handles employee registration requests
type EmployeeHandler struct {
	service EmployeeService
	logger  *slog.Logger
}

func NewEmployeeHandler(service EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger,
	}
}

// EmployeeResponse is the public projection of an employee
type EmployeeResponse struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
	RegisteredAt string `json:"registered_at"`
}

// AvailabilityResponse response for the id check endpoint
type AvailabilityResponse struct {
	EmployeeID string `json:"employee_id"`
	Available  bool   `json:"available"`
}

// ListEmployeesResponse response for the listing endpoint
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

// Register POST /v1/employees - register a new employee with a face image
func (h *EmployeeHandler) Register(c *fiber.Ctx) error {
	employeeID := strings.TrimSpace(c.FormValue("employee_id"))
	name := strings.TrimSpace(c.FormValue("name"))

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("register employee: %w", err)
	}

	employee, err := h.service.Register(c.Context(), service.RegisterInput{
		EmployeeID: employeeID,
		Name:       name,
		Department: strings.TrimSpace(c.FormValue("department")),
		Position:   strings.TrimSpace(c.FormValue("position")),
		Image:      imageBytes,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(*employee))
}

// Check GET /v1/employees/check/:employee_id - availability probe for the
// registration form
func (h *EmployeeHandler) Check(c *fiber.Ctx) error {
	employeeID := strings.TrimSpace(c.Params("employee_id"))
	if employeeID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("employee_id is required"))
	}

	available, err := h.service.CheckAvailability(c.Context(), employeeID)
	if err != nil {
		return err
	}

	return c.JSON(AvailabilityResponse{
		EmployeeID: employeeID,
		Available:  available,
	})
}

// List GET /v1/employees - every registered employee
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.ListEmployees(c.Context())
	if err != nil {
		return err
	}

	out := make([]EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		out = append(out, toEmployeeResponse(employee))
	}

	return c.JSON(ListEmployeesResponse{
		Employees: out,
		Total:     len(out),
	})
}

func toEmployeeResponse(employee domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:   employee.EmployeeID,
		Name:         employee.Name,
		Department:   employee.Department,
		Position:     employee.Position,
		RegisteredAt: employee.RegisteredAt.UTC().Format(time.RFC3339),
	}
}
