package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/opensamaj/samiti/internal/config"
	"github.com/opensamaj/samiti/internal/infra/cache"
	"github.com/opensamaj/samiti/internal/infra/database"
	"github.com/opensamaj/samiti/internal/infra/repository"
	"github.com/opensamaj/samiti/internal/present/rest"
	"github.com/opensamaj/samiti/internal/present/rest/middleware"
	"github.com/opensamaj/samiti/internal/service"
	"github.com/opensamaj/samiti/internal/usecase"
)

func main() {
	godotenv.Load()

	configPath := os.Getenv("SAMITI_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(cfg.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = database.MigratePostgres(db)
	if err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(cfg.Server.RedisAddr, cfg.Server.RedisPassword, cfg.Server.RedisDB)
	mc := database.NewMemcached(cfg.Server.MemcachedAddr)

	geoRepo := repository.NewGeoRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	draftRepo := repository.NewDraftRepository(rdb, time.Duration(cfg.Server.WizardDraftTTLMinutes)*time.Minute)

	viewCache := cache.NewMemcachedCache(mc, int32(cfg.Server.ProfileCacheTTLSeconds))
	signal := service.NewSignalService(rdb)

	geoUC := usecase.NewGeoUsecase(geoRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, viewCache, signal)
	readerUC := usecase.NewReaderUsecase(profileRepo, viewCache)
	memberUC := usecase.NewMemberUsecase(memberRepo, viewCache)
	wizardUC := usecase.NewWizardUsecase(draftRepo, profileUC)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	if cfg.Server.EnableTrace {
		shutdown, err := setupTracer(cfg.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown()
		e.Use(otelecho.Middleware("samiti"))
	}

	handler := rest.NewHandler(geoUC, profileUC, readerUC, memberUC, wizardUC, signal)
	handler.RegisterRoutes(e, middleware.NewIdentityMiddleware())

	// The expiry sweep lives out here: the core stays request-scoped.
	go func() {
		interval := time.Duration(cfg.Server.SweepIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			swept, err := memberUC.SweepExpired(context.Background(), time.Now())
			if err != nil {
				slog.Error("membership sweep failed", slog.String("error", err.Error()))
				continue
			}
			if swept > 0 {
				slog.Info("membership sweep", slog.Int64("deactivated", swept))
			}
		}
	}()

	e.Logger.Fatal(e.Start(cfg.Server.ListenAddr))
}

func setupTracer(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("samiti")),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down tracer", slog.String("error", err.Error()))
		}
	}, nil
}
