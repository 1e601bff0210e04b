// Package server wires the punchclock application together: configuration,
// storage backend, capture providers, services and the HTTP server, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mpavlovs/punchclock/internal/logging"
	"github.com/mpavlovs/punchclock/internal/server/capture"
	"github.com/mpavlovs/punchclock/internal/server/config"
	"github.com/mpavlovs/punchclock/internal/server/httpapi"
	"github.com/mpavlovs/punchclock/internal/server/repositories/repomanager"
	"github.com/mpavlovs/punchclock/internal/server/screenshots"
	"github.com/mpavlovs/punchclock/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	repos, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, staticDir, err := newScreenshotStore(c)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("screenshot store init error: %w", err)
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}

	contractorService := services.NewContractorService(repos, logger)
	clockService := services.NewClockService(repos, capture.NewScreen(), capture.NewSystem(), store,
		services.FixedShareSplit(c.ProductiveShare), c.CaptureTimeout, logger)
	reportService := services.NewReportService(repos, loc)

	srv := httpapi.NewServer(c.HTTPAddr, contractorService, clockService, reportService, staticDir, logger)

	return &App{config: c, logger: logger, repos: repos, server: srv}, nil
}

// newRepositoryManager picks the storage backend: an empty DSN keeps all
// state in memory, anything else is treated as a PostgreSQL DSN and gets
// migrations applied on startup.
func newRepositoryManager(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	return repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
}

// newScreenshotStore builds the configured blob backend. The second return
// value is the directory the HTTP layer must serve statically; it is empty
// for S3, whose URLs are presigned and self-contained.
func newScreenshotStore(c *config.Config) (screenshots.Store, string, error) {
	switch c.ScreenshotBackend {
	case "s3":
		return screenshots.NewS3Store(screenshots.S3Options{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3BaseEndpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		}), "", nil
	case "", "local":
		store, err := screenshots.NewLocalStore(c.ScreenshotDir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	default:
		return nil, "", fmt.Errorf("unknown screenshot backend %q", c.ScreenshotBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"address", app.config.HTTPAddr,
		"storage", storageKind(app.config),
		"screenshots", app.config.ScreenshotBackend,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err.Error())
	}
}

func storageKind(c *config.Config) string {
	if c.DatabaseDSN == "" {
		return "memory"
	}
	return "postgres"
}
