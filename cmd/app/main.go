package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"errands/cmd"
	httpin "errands/internal/adapters/in/http"
	"errands/internal/adapters/out/postgres"
	"errands/internal/adapters/out/postgres/lease"
	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/ports"
	"errands/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	var sweepLease ports.Lease
	if configs.SweepLeaseEnabled {
		locker, openErr := lease.Open(ctx, configs.DSN())
		if openErr != nil {
			log.Fatalf("open sweep lease: %v", openErr)
		}
		defer func() {
			_ = locker.Close()
		}()
		sweepLease = locker
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager, err := app.CreateJobManager(sweepLease)
	if err != nil {
		log.Fatalf("build jobs: %v", err)
	}
	// Catch up on anything that went stale while the process was down.
	if err = jobManager.RunAll(ctx); err != nil {
		logger.ErrorContext(ctx, "initial sweep failed", "error", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            os.Getenv("HTTP_PORT"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              os.Getenv("DB_PORT"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           envOr("DB_SSLMODE", "disable"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AutoConfirmSchedule: envOr("AUTO_CONFIRM_SCHEDULE", jobs.DefaultAutoConfirmSpec),
		AutoConfirmWindow:   envDuration("AUTO_CONFIRM_WINDOW", commands.DefaultConfirmWindow),
		ExpirySchedule:      envOr("EXPIRY_SCHEDULE", jobs.DefaultExpirySpec),
		SweepBatchSize:      envInt("SWEEP_BATCH_SIZE", commands.DefaultSweepBatchSize),
		SweepLeaseEnabled:   envBool("SWEEP_LEASE_ENABLED", false),
	}
	return config
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := envOr(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func envInt(key string, fallback int) int {
	raw := envOr(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return n
}

func envBool(key string, fallback bool) bool {
	raw := envOr(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return b
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	server := httpin.NewServer(app.CreateHTTPHandlers())
	if err := httpin.Setup(ctx, e, server, []byte(configs.JWTSecret), logger); err != nil {
		log.Fatalf("set up http server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}
