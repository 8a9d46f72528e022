package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/service"
)

// EmployeeHandler exposes supervisor-facing employee management.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employeeService}
}

// Create handles POST /employees.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	actor, err := supervisorActor(c)
	if err != nil {
		return err
	}

	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	employee, err := h.employees.Create(c.Context(), actor, req.Name, req.Email, req.HourlyRate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// List handles GET /employees.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	actor, err := supervisorActor(c)
	if err != nil {
		return err
	}

	employees, err := h.employees.ListBySupervisor(c.Context(), actor)
	if err != nil {
		return err
	}

	responses := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, dto.NewEmployeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /employees/:employeeID.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	actor, err := supervisorActor(c)
	if err != nil {
		return err
	}

	employee, err := h.employees.Get(c.Context(), actor, c.Params("employeeID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Update handles PATCH /employees/:employeeID.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	actor, err := supervisorActor(c)
	if err != nil {
		return err
	}

	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	employee, err := h.employees.Update(c.Context(), actor, c.Params("employeeID"), service.EmployeeUpdate{
		Name:       req.Name,
		Email:      req.Email,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Deactivate handles DELETE /employees/:employeeID (soft-disable).
func (h *EmployeeHandler) Deactivate(c *fiber.Ctx) error {
	actor, err := supervisorActor(c)
	if err != nil {
		return err
	}

	employee, err := h.employees.Deactivate(c.Context(), actor, c.Params("employeeID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

func supervisorActor(c *fiber.Ctx) (*domain.Supervisor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Supervisor == nil {
		return nil, fiber.NewError(http.StatusForbidden, "supervisor required")
	}
	return principal.Supervisor, nil
}
