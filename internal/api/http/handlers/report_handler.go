package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/service"
)

// ReportHandler exposes attendance history queries.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reportService}
}

// History handles GET /reports/attendance/:employeeID?from=&to= (supervisor).
func (h *ReportHandler) History(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	history, err := h.reports.History(c.Context(), c.Params("employeeID"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": historyResponse(history)})
}

// HistorySelf handles GET /attendance/me/history?from=&to= (employee).
func (h *ReportHandler) HistorySelf(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return fiber.NewError(http.StatusForbidden, "employee required")
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}

	history, err := h.reports.History(c.Context(), principal.Employee.ID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": historyResponse(history)})
}

func historyResponse(history *service.AttendanceHistory) dto.AttendanceHistoryResponse {
	records := make([]dto.AttendanceRecordResponse, 0, len(history.Records))
	for i := range history.Records {
		records = append(records, dto.NewAttendanceRecordResponse(&history.Records[i]))
	}
	return dto.AttendanceHistoryResponse{
		EmployeeID: history.EmployeeID,
		Records:    records,
		TotalHours: history.TotalHours,
		TotalPay:   history.TotalPay,
	}
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	value := c.Query(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, key+" must be YYYY-MM-DD")
	}
	return &parsed, nil
}
