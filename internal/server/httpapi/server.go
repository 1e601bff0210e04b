// Package httpapi exposes the time tracking services over a REST API:
// contractor management, clock-in/clock-out, attendance reports and the
// dashboard page. Transport concerns stay here; all rules live in the
// services.
package httpapi

import (
	"context"
	_ "embed"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/mpavlovs/punchclock/internal/logging"
	"github.com/mpavlovs/punchclock/internal/server/services"
)

//go:embed static/dashboard.html
var dashboardHTML []byte

const shutdownTimeout = 5 * time.Second

type Server struct {
	address     string
	contractors *services.ContractorService
	clock       *services.ClockService
	reports     *services.ReportService
	logger      logging.Logger
	validate    *validator.Validate

	// screenshotDir, when set, is served under /screenshots so local
	// store URLs resolve. Empty for the S3 backend.
	screenshotDir string
}

func NewServer(
	address string,
	cs *services.ContractorService,
	ks *services.ClockService,
	rs *services.ReportService,
	screenshotDir string,
	l logging.Logger,
) *Server {
	return &Server{
		address:       address,
		contractors:   cs,
		clock:         ks,
		reports:       rs,
		logger:        l.With("module", "http_server"),
		validate:      validator.New(),
		screenshotDir: screenshotDir,
	}
}

// app assembles the fiber application with middleware and routes.
func (s *Server) app() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "punchclock",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return jsonError(c, fe.Code, fe.Message)
			}
			return jsonError(c, fiber.StatusInternalServerError, "internal error")
		},
	})

	app.Use(recover.New())

	// Request-ID + timing.
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)

		start := time.Now()
		err := c.Next()
		s.logger.Info(c.UserContext(), "request",
			"id", id,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	})

	s.registerRoutes(app)
	return app
}

func (s *Server) registerRoutes(app *fiber.App) {
	app.Get("/", s.dashboard)
	app.Get("/health", s.health)

	if s.screenshotDir != "" {
		app.Static("/screenshots", s.screenshotDir)
	}

	api := app.Group("/api")

	api.Post("/contractors", s.registerContractor)
	api.Get("/contractors", s.listContractors)
	api.Get("/contractors/:id", s.getContractor)
	api.Post("/contractors/:id/activate", s.activateContractor)
	api.Post("/contractors/:id/deactivate", s.deactivateContractor)
	api.Get("/contractors/:id/active-session", s.activeSession)

	api.Post("/clock-in", s.clockIn)
	api.Post("/clock-out", s.clockOut)

	api.Get("/time-entries", s.recentEntries)
	api.Get("/time-entries/:id/screenshots", s.entryScreenshots)

	api.Get("/reports/attendance", s.attendanceReport)
	api.Get("/system-info", s.systemInfo)
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	app := s.app()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	// starts accepting incoming connections
	if err := app.Listener(listen); err != nil {
		return err
	}

	return nil
}
