package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/http/handlers"
	"github.com/spec-kit/attendance-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	QR             *handlers.QRHandler
	Attendance     *handlers.AttendanceHandler
	Employees      *handlers.EmployeeHandler
	Reports        *handlers.ReportHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/debug/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/supervisors/login", cfg.Auth.LoginSupervisor)
	authGroup.Post("/supervisors/register", cfg.Auth.RegisterSupervisor)
	authGroup.Post("/employees/login", cfg.Auth.LoginEmployee)
	authGroup.Post("/employees/login-by-id/:id", cfg.Auth.LoginEmployeeByID)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// The kiosk scan route is unauthenticated: the single-use QR token is the
	// credential being presented.
	app.Post("/attendance/scan", cfg.Attendance.Scan)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	me := protected.Group("/attendance/me", auth.RequireEmployee())
	me.Post("/check-in", cfg.Attendance.CheckInSelf)
	me.Post("/check-out", cfg.Attendance.CheckOutSelf)
	me.Get("/history", cfg.Reports.HistorySelf)

	supervised := protected.Group("", auth.RequireSupervisor())
	supervised.Post("/employees", cfg.Employees.Create)
	supervised.Get("/employees", cfg.Employees.List)
	supervised.Get("/employees/:employeeID", cfg.Employees.Get)
	supervised.Patch("/employees/:employeeID", cfg.Employees.Update)
	supervised.Delete("/employees/:employeeID", cfg.Employees.Deactivate)
	supervised.Post("/employees/:employeeID/qr", cfg.QR.Issue)
	supervised.Post("/qr/validate", cfg.QR.Validate)
	supervised.Post("/attendance/check-in/:employeeID", cfg.Attendance.CheckIn)
	supervised.Post("/attendance/check-out/:employeeID", cfg.Attendance.CheckOut)
	supervised.Post("/attendance/manual", cfg.Attendance.RegisterManual)
	supervised.Get("/reports/attendance/:employeeID", cfg.Reports.History)
}
