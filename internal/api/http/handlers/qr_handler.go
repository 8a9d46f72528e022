package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/service"
)

// QRHandler exposes QR token issuance and validation.
type QRHandler struct {
	qrTokens *service.QRService
}

// NewQRHandler constructs handler.
func NewQRHandler(qrService *service.QRService) *QRHandler {
	return &QRHandler{qrTokens: qrService}
}

// Issue handles POST /employees/:employeeID/qr (supervisor). Issuing a new
// token invalidates any prior still-usable one for the employee.
func (h *QRHandler) Issue(c *fiber.Ctx) error {
	token, err := h.qrTokens.Issue(c.Context(), c.Params("employeeID"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewQRTokenResponse(token)})
}

// Validate handles POST /qr/validate. Consumes the token; a second call with
// the same token fails.
func (h *QRHandler) Validate(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	employeeID, err := h.qrTokens.Validate(c.Context(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"employee_id": employeeID}})
}
