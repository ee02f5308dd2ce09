package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ledger"
	"github.com/saturnino-fabrica-de-software/ponto/internal/report"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
)

type Dependencies struct {
	EmployeeRepo   *repository.EmployeeRepository
	AttendanceRepo *repository.AttendanceRepository
	Extractor      extractor.Extractor
	Gallery        *gallery.Gallery
	VectorStore    *gallery.VectorStore
	Exporter       *report.Exporter
	Ledger         *ledger.Ledger
	FacesDir       string
	MatchThreshold float64
	DB             *pgxpool.Pool
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Ponto API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group
	v1 := r.app.Group("/v1")

	// Only configure business routes if dependencies were provided
	if r.deps != nil {
		// Rate limiting (per client IP) - kiosks post frames continuously
		r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
		v1.Use(r.rateLimiter.Handler())

		// Registration service
		registrationService := service.NewRegistrationService(
			r.deps.EmployeeRepo,
			r.deps.Extractor,
			r.deps.VectorStore,
			r.deps.Gallery,
			r.deps.FacesDir,
			r.logger,
		)

		// Attendance service
		attendanceService := service.NewAttendanceService(
			r.deps.Extractor,
			r.deps.Gallery,
			r.deps.Ledger,
			r.deps.Exporter,
			r.deps.AttendanceRepo,
			r.deps.MatchThreshold,
			r.logger,
		)

		// Handlers
		employeeHandler := handler.NewEmployeeHandler(registrationService, r.logger)
		attendanceHandler := handler.NewAttendanceHandler(attendanceService, r.logger)
		reportHandler := handler.NewReportHandler(r.deps.Exporter, r.logger)

		// Employee routes
		v1.Post("/employees", employeeHandler.Register)
		v1.Get("/employees", employeeHandler.List)
		v1.Get("/employees/check/:employee_id", employeeHandler.Check)

		// Attendance routes
		v1.Post("/attendance", attendanceHandler.Mark)
		v1.Get("/attendance/today", attendanceHandler.Today)
		v1.Get("/attendance", attendanceHandler.History)

		// Report routes
		v1.Get("/reports", reportHandler.List)
		v1.Get("/reports/:filename", reportHandler.Download)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
