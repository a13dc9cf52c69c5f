package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/wellnessflow/api/internal/config"
	"github.com/wellnessflow/api/internal/handler"
	"github.com/wellnessflow/api/internal/metrics"
	"github.com/wellnessflow/api/internal/middleware"
	"github.com/wellnessflow/api/internal/service"
	"github.com/wellnessflow/api/internal/store"
	"github.com/wellnessflow/api/pkg/jwt"
)

func main() {
	app := &cli.App{
		Name:  "wellnessflow-server",
		Usage: "serve the WellnessFlow HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{config.ConfigFileEnv},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize structured logging
	slog.SetDefault(newLogger(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}
	tokenService := service.NewTokenService(service.TokenServiceConfig{JWTService: jwtService})

	healthChecks := map[string]handler.HealthCheck{"database": st.Ping}

	// Failed-login lockout is optional and fails open when Redis is down
	var loginLimiter service.LoginLimiter
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable at startup, lockout will fail open", slog.String("error", err.Error()))
		}
		loginLimiter = service.NewRedisLoginLimiter(rdb, service.LockoutConfig{
			Threshold: cfg.Auth.MaxLoginAttempts,
			Window:    cfg.Auth.LockoutWindow,
		})
		healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     st.Users,
		TokenService: tokenService,
		LoginLimiter: loginLimiter,
		BcryptCost:   cfg.Auth.BcryptCost,
	})
	sessionService := service.NewSessionService(service.SessionServiceConfig{
		SessionRepo: st.Sessions,
		UserRepo:    st.Users,
	})

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		rateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			Rate:   cfg.RateLimit.RequestsPerSecond,
			Window: time.Second,
			Burst:  cfg.RateLimit.Burst,
		})
		defer rateLimiter.Stop()
	}

	router := handler.NewRouter(handler.RouterDeps{
		AuthService:    authService,
		SessionService: sessionService,
		TokenValidator: tokenService,
		RateLimiter:    rateLimiter,
		HealthChecks:   healthChecks,
		MetricsHandler: metrics.Handler(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("driver", cfg.Database.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	select {
	case err := <-serverErr:
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

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
