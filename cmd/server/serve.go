package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mahostav/api/internal/catalog"
	"github.com/mahostav/api/internal/handler"
	"github.com/mahostav/api/internal/jobs"
	"github.com/mahostav/api/internal/metrics"
	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/repository"
	"github.com/mahostav/api/internal/service"
	"github.com/mahostav/api/pkg/jwt"
)

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	defaults, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load default catalogue: %w", err)
	}

	m := metrics.New()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	// Services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		TokenRepo:  tokenRepo,
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})
	profileService := service.NewProfileService(service.ProfileServiceConfig{
		ProfileRepo: profileRepo,
	})
	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo:      eventRepo,
		RegisteredRepo: registrationRepo,
		Catalog:        defaults,
	})
	registrationService := service.NewRegistrationService(service.RegistrationServiceConfig{
		Users:            userRepo,
		EventRepo:        eventRepo,
		RegistrationRepo: registrationRepo,
		TeamRepo:         teamRepo,
		Recorder:         m,
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL: cfg.Idempotency.TTL,
	})
	defer idempotencyStore.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Auth:           handler.NewAuthHandler(authService),
		Profile:        handler.NewProfileHandler(profileService),
		Events:         handler.NewEventHandler(eventService),
		Registrations:  handler.NewRegistrationHandler(registrationService),
		Health:         handler.NewHealthHandler(db, version),
		TokenValidator: authService,
		ProfileLoader:  handler.ParticipantLoader(profileService),
		RateLimiter:    rateLimiter,
		Idempotency:    idempotencyStore,
		Metrics:        m,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Background jobs
	if cfg.Sweeper.Enabled {
		runner, err := jobs.NewRunner(
			jobs.NewOrphanTeamSweeper(jobs.OrphanSweeperConfig{
				Repo:     teamRepo,
				Recorder: m,
				Interval: cfg.Sweeper.Interval,
				Grace:    cfg.Sweeper.OrphanGrace,
			}),
			jobs.NewTokenCleanup(tokenService, cfg.Sweeper.TokenCleanupInterval),
		)
		if err != nil {
			return err
		}
		if err := runner.Start(); err != nil {
			return err
		}
		defer func() {
			if err := runner.Stop(); err != nil {
				slog.Error("failed to stop job runner", slog.String("error", err.Error()))
			}
		}()
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("version", version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
	return nil
}
