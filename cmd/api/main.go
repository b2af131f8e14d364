package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"catfacts/docs"
	"catfacts/internal/config"
	"catfacts/internal/database"
	"catfacts/internal/database/migration"
	handlers "catfacts/internal/http/handler"
	"catfacts/internal/http/middleware"
	"catfacts/internal/logging"
	"catfacts/internal/otel"
	"catfacts/internal/repository/sqlite"
	"catfacts/internal/service"
	"catfacts/internal/storage"
	"catfacts/internal/upstream"
)

// @title Cat Facts API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location(), cfg.LogLevel)

	shutdownTracing, err := otel.Init(context.Background(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	// Open the SQLite file and make sure the schema exists before serving anything
	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = migration.EnsureMigrated(migrateCtx, db, log, cfg.Database.Path)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// The archive is optional; without an endpoint facts live only in SQLite
	var archive service.Archiver
	if cfg.Archive.Enabled() {
		objStore, err := storage.NewMinIO(cfg.Archive)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize fact archive")
		}
		archive = storage.NewFactArchive(objStore)
	}

	factRepo := sqlite.NewFactSQLite(db)
	factSrc := upstream.NewClient(cfg.Upstream)
	factSvc := service.NewFactService(factSrc, factRepo, archive, log)

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, factSvc)
	app.Get("/metrics", middleware.MetricsHandler(prometheus.DefaultGatherer))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{
		"addr":            addr,
		"db_path":         cfg.Database.Path,
		"upstream_url":    cfg.Upstream.URL,
		"archive_enabled": archive != nil,
	}).Info("starting server")

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
