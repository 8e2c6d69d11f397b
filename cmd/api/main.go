// @title                       Numerology Site API
// @version                     1.0
// @description                 Catalog, checkout, order history and admin dashboard for the numerology services site.
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        session_token
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/numerologyhub/site-api/docs"
	"github.com/numerologyhub/site-api/internal/api"
	"github.com/numerologyhub/site-api/internal/api/handler"
	"github.com/numerologyhub/site-api/internal/core/service"
	mongodb "github.com/numerologyhub/site-api/internal/infrastructure/db/mongo"
	redisdb "github.com/numerologyhub/site-api/internal/infrastructure/db/redis"
	"github.com/numerologyhub/site-api/internal/infrastructure/http/handlers"
	"github.com/numerologyhub/site-api/internal/infrastructure/payment"
	"github.com/numerologyhub/site-api/internal/infrastructure/storage"
	"github.com/numerologyhub/site-api/internal/pkg/config"
	"github.com/numerologyhub/site-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		App:    "site-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongodb")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	images, err := storage.NewImageStore(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init image store")
	}
	if err := images.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Msg("ensure bucket failed")
	}

	prices, err := service.NewPriceFormatter(cfg.Locale, cfg.Payment.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid locale or currency")
	}

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	orders := mongodb.NewOrderRepository(db)
	catalog := mongodb.NewCatalogRepository(db)
	contacts := mongodb.NewContactRepository(db)
	reports := mongodb.NewSampleReportRepository(db)
	stats := mongodb.NewStatsRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, orders, catalog, contacts, reports); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Collaborators ---
	gateway := payment.NewGateway(payment.Config{
		KeyID:         cfg.Payment.KeyID,
		KeySecret:     cfg.Payment.KeySecret,
		WebhookSecret: cfg.Payment.WebhookSecret,
		BaseURL:       cfg.Payment.BaseURL,
	})
	lock := redisdb.NewPaymentLock(rdb, 0)

	// --- Services ---
	sessions := service.NewSessionService(users, cfg.JWTSecret, cfg.Session.TTL)
	deps := api.Dependencies{
		Log:          log,
		ExposeErrors: !cfg.IsProduction(),
		Cookie:       handler.CookieConfig{Name: cfg.Session.Cookie, Secure: cfg.IsProduction()},
		StaticDir:    cfg.StaticDir,

		Auth:          service.NewAuthService(users, sessions, logger.With("auth")),
		Sessions:      sessions,
		Orders:        service.NewOrderService(orders, catalog, gateway, lock, prices, logger.With("orders")),
		Payments:      service.NewPaymentService(orders, gateway, lock, logger.With("payments")),
		Admin:         service.NewAdminService(stats, orders, users, catalog, reports, prices, logger.With("admin")),
		Catalog:       service.NewCatalogService(catalog, images, logger.With("catalog")),
		Contacts:      service.NewContactService(contacts, logger.With("contacts")),
		SampleReports: service.NewSampleReportService(reports, logger.With("sample_reports")),
		Profiles:      service.NewProfileService(users, images, logger.With("profile")),
		Media:         service.NewMediaService(images),

		Health: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
			"storage": images.Ping,
		},
	}

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	shutdown(log, e, mongoClient, rdb)
}

type closer interface {
	Close() error
}

type disconnecter interface {
	Disconnect(ctx context.Context) error
}

func shutdown(log zerolog.Logger, srv interface{ Shutdown(context.Context) error }, mongoClient disconnecter, rdb closer) {
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect error")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}

	log.Info().Msg("server exited cleanly")
}
