package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/golf-reservation/internal/audit"
	"github.com/BruksfildServices01/golf-reservation/internal/config"
	dbpkg "github.com/BruksfildServices01/golf-reservation/internal/db"
	"github.com/BruksfildServices01/golf-reservation/internal/events"
	"github.com/BruksfildServices01/golf-reservation/internal/infra/idempotency"
	infraRepo "github.com/BruksfildServices01/golf-reservation/internal/infra/repository"
	"github.com/BruksfildServices01/golf-reservation/internal/logging"
	"github.com/BruksfildServices01/golf-reservation/internal/metrics"
	"github.com/BruksfildServices01/golf-reservation/internal/middleware"
	"github.com/BruksfildServices01/golf-reservation/internal/routes"
	"github.com/BruksfildServices01/golf-reservation/internal/tracing"
	ucBooking "github.com/BruksfildServices01/golf-reservation/internal/usecase/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/validators"
)

const serviceName = "golf-reservation"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// TELEMETRY
	// ======================================================
	shutdownTracer, err := tracing.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	m := metrics.New(prometheus.DefaultRegisterer)

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	opts := []ucBooking.Option{
		ucBooking.WithAudit(auditDispatcher),
		ucBooking.WithMetrics(m),
		ucBooking.WithLogger(logger),
	}

	if cfg.RedisURL != "" {
		client, err := idempotency.NewClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, ucBooking.WithRequestLock(idempotency.NewRedisLock(client, cfg.RequestLockTTL)))
	}

	if cfg.NatsURL != "" {
		pub, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts = append(opts, ucBooking.WithEvents(pub))
	}

	bookings := ucBooking.NewService(
		infraRepo.NewBookingGormRepository(db),
		cfg.BookingRules(),
		cfg.Location(),
		opts...,
	)

	// ======================================================
	// HTTP
	// ======================================================
	if err := validators.Register(); err != nil {
		return err
	}

	var resolver middleware.Resolver = middleware.NewJWTResolver(cfg.JWTSecret)
	if cfg.AuthMode == config.AuthModeStatic {
		logger.Warn("static identity resolver in use", "user_id", cfg.StaticUserID, "role", cfg.StaticRole)
		resolver = middleware.NewStaticResolver(cfg.StaticUserID, cfg.StaticRole)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Bookings: bookings,
		Resolver: resolver,
		Gatherer: prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: otelhttp.NewHandler(r, serviceName),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
