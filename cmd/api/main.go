package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/attendance-service/internal/api/http"
	"github.com/spec-kit/attendance-service/internal/api/http/handlers"
	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/clock"
	"github.com/spec-kit/attendance-service/internal/config"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/observability"
	"github.com/spec-kit/attendance-service/internal/persistence"
	"github.com/spec-kit/attendance-service/internal/qr"
	"github.com/spec-kit/attendance-service/internal/repository"
	"github.com/spec-kit/attendance-service/internal/service"
	"github.com/spec-kit/attendance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	supervisorRepo := repository.NewSupervisorRepository(pool)
	qrTokenRepo := repository.NewQRTokenRepository(pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	systemClock := clock.System()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	sessionService := service.NewSessionService(service.SessionDependencies{
		RefreshTokenRepo: refreshTokenRepo,
		SupervisorRepo:   supervisorRepo,
		EmployeeRepo:     employeeRepo,
		TokenManager:     tokenManager,
		Clock:            systemClock,
		RefreshTTL:       cfg.Auth.RefreshTokenTTL(),
		Logger:           logger,
	})
	qrService := service.NewQRService(service.QRDependencies{
		EmployeeRepo: employeeRepo,
		QRTokenRepo:  qrTokenRepo,
		Renderer:     qr.NewPNGRenderer(0),
		Clock:        systemClock,
		TTL:          cfg.Auth.QRTokenTTL(),
		Cache:        redis,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	attendanceService := service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
		Clock:          systemClock,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		SupervisorRepo: supervisorRepo,
		EmployeeRepo:   employeeRepo,
		Hasher:         auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Sessions:       sessionService,
		QRTokens:       qrService,
		Attendance:     attendanceService,
		Logger:         logger,
	})
	employeeService := service.NewEmployeeService(employeeRepo, logger)
	reportService := service.NewReportService(employeeRepo, attendanceRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokenManager, supervisorRepo, employeeRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		QR:             handlers.NewQRHandler(qrService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService, authService),
		Employees:      handlers.NewEmployeeHandler(employeeService),
		Reports:        handlers.NewReportHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
