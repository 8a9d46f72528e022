package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/service"
)

// AuthHandler exposes login, refresh, and registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// LoginSupervisor handles POST /auth/supervisors/login.
func (h *AuthHandler) LoginSupervisor(c *fiber.Ctx) error {
	var req dto.SupervisorLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UsernameOrEmail == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username_or_email and password required")
	}

	session, err := h.auth.LoginSupervisor(c.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// RegisterSupervisor handles POST /auth/supervisors/register.
func (h *AuthHandler) RegisterSupervisor(c *fiber.Ctx) error {
	var req dto.SupervisorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	supervisor, err := h.auth.RegisterSupervisor(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":    supervisor.ID,
			"name":  supervisor.Name,
			"email": supervisor.Email,
		},
	})
}

// LoginEmployee handles POST /auth/employees/login.
func (h *AuthHandler) LoginEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UsernameOrEmail == "" {
		return fiber.NewError(http.StatusBadRequest, "username_or_email required")
	}

	session, err := h.auth.LoginEmployee(c.Context(), req.UsernameOrEmail)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// LoginEmployeeByID handles POST /auth/employees/login-by-id/:id.
func (h *AuthHandler) LoginEmployeeByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(http.StatusBadRequest, "employee id required")
	}

	session, err := h.auth.LoginEmployeeByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	session, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	if err := h.auth.Logout(c.Context(), req.RefreshToken); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
