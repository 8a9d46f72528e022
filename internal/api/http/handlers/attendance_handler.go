package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/service"
)

// AttendanceHandler exposes check-in/check-out and correction endpoints.
type AttendanceHandler struct {
	attendance  *service.AttendanceService
	authService *service.AuthService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService, authService *service.AuthService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, authService: authService}
}

// Scan handles POST /attendance/scan, the kiosk QR flow. The QR token is
// itself the credential, so the route is unauthenticated.
func (h *AttendanceHandler) Scan(c *fiber.Ctx) error {
	var req dto.QRScanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	record, err := h.authService.ScanQR(c.Context(), req.Token, service.ScanDirection(req.Direction))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAttendanceRecordResponse(record)})
}

// CheckIn handles POST /attendance/check-in/:employeeID (supervisor).
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	record, err := h.attendance.CheckIn(c.Context(), c.Params("employeeID"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttendanceRecordResponse(record)})
}

// CheckOut handles POST /attendance/check-out/:employeeID (supervisor).
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	record, err := h.attendance.CheckOut(c.Context(), c.Params("employeeID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAttendanceRecordResponse(record)})
}

// CheckInSelf handles POST /attendance/me/check-in (employee).
func (h *AttendanceHandler) CheckInSelf(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return fiber.NewError(http.StatusForbidden, "employee required")
	}
	record, err := h.attendance.CheckIn(c.Context(), principal.Employee.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttendanceRecordResponse(record)})
}

// CheckOutSelf handles POST /attendance/me/check-out (employee).
func (h *AttendanceHandler) CheckOutSelf(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return fiber.NewError(http.StatusForbidden, "employee required")
	}
	record, err := h.attendance.CheckOut(c.Context(), principal.Employee.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAttendanceRecordResponse(record)})
}

// RegisterManual handles POST /attendance/manual (supervisor correction).
func (h *AttendanceHandler) RegisterManual(c *fiber.Ctx) error {
	var req dto.ManualRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.EmployeeID == "" || req.Date == "" {
		return fiber.NewError(http.StatusBadRequest, "employee_id and date required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	record, err := h.attendance.RegisterManual(c.Context(), req.EmployeeID, date, req.CheckInAt, req.CheckOutAt)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAttendanceRecordResponse(record)})
}
