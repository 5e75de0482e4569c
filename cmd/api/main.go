package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"advocatehub/internal/apiclient"
	"advocatehub/internal/auth"
	"advocatehub/internal/config"
	"advocatehub/internal/database"
	"advocatehub/internal/database/migration"
	"advocatehub/internal/geo"
	handlers "advocatehub/internal/http/handler"
	"advocatehub/internal/http/middleware"
	"advocatehub/internal/otel"
	"advocatehub/internal/repository/postgres"
	"advocatehub/internal/service"
	"advocatehub/internal/storage"
)

// @title Advocate Hub API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	users := postgres.NewUserPostgres(db)
	docSvc := service.NewDocumentService(objStore, postgres.NewDocumentPostgres(db), cfg.PreviewExpiry())
	msgSvc := service.NewMessageService(users, postgres.NewMessagePostgres(db))
	postSvc := service.NewPostService(postgres.NewPostPostgres(db))
	authSvc := auth.NewService(users, postgres.NewSessionPostgres(db), cfg.Session.TTL())
	if cfg.Seed.Email != "" {
		created, err := authSvc.EnsureAccount(ctx, auth.Account{
			Email:    cfg.Seed.Email,
			Name:     cfg.Seed.Name,
			UserType: cfg.Seed.UserType,
			Password: cfg.Seed.Password,
		})
		if err != nil {
			log.Fatalf("failed to seed account: %v", err)
		}
		log.Printf("seed account %s: created=%t", cfg.Seed.Email, created)
	}

	// Shared outbound client, built on first use.
	apiClients := apiclient.NewProvider(cfg.API)
	defer apiClients.Close()

	var locator geo.Locator = geo.Unsupported{}
	if cfg.Geo.LocatePath != "" {
		locator = geo.NewHTTPLocator(apiClients, cfg.Geo.LocatePath)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:        db,
		Documents: docSvc,
		Messages:  msgSvc,
		Posts:     postSvc,
		Auth:      authSvc,
		Gate:      middleware.NewSessionGate(authSvc, cfg.Session, metrics),
		Locator:   locator,
		Session:   cfg.Session,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),

		PublicHost:   cfg.AppHost,
		PublicScheme: cfg.AppScheme,
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.ShutdownWithContext(sctx)
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
