package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aeroportal/flightops/internal/api"
	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/config"
	"aeroportal/flightops/internal/constants"
	"aeroportal/flightops/internal/db"
	"aeroportal/flightops/internal/jobs"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/metrics"
	"aeroportal/flightops/internal/middleware"
	"aeroportal/flightops/internal/routes"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Flight operations engine starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"cache_driver", cfg.CacheDriver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	gdb, sqlDB, err := openDatabase(cfg)
	if err != nil {
		logging.Error("Failed to open database", "driver", cfg.DBDriver, "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqlDB.Close()

	cache := openCache(cfg)
	defer cache.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, gdb, sqlDB, cache, metricsReg)
	if err != nil {
		log.Fatalf("Failed to wire dependencies: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AerodromesSourceURL != "" {
		if count, err := deps.Services.AerodromeLoader.Count(ctx); err == nil && count == 0 {
			go func() {
				imported, err := deps.Services.AerodromeLoader.LoadFromSource(ctx)
				if err != nil {
					logging.Error("Initial aerodrome import failed", "error", err)
					return
				}
				logging.Info("Initial aerodrome import finished", "imported", imported)
			}()
		}
	}

	jobs.InitializeJobs(ctx, cfg, deps.Services.Expirations, metricsReg)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := routes.RegisterRoutes(deps, prometheus.DefaultGatherer, limiter, time.Now())

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.HTTPPort, "auth_enabled", deps.Services.Tokens != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, *sqlx.DB, error) {
	if cfg.DBDriver == "sqlite" {
		gdb, err := db.InitSQLiteORM(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.WrapSQLX(gdb, db.SQLiteDriverName)
		if err != nil {
			return nil, nil, err
		}
		return gdb, sqlDB, nil
	}

	dsn := cfg.PostgresDSN()
	if err := db.InitPostgres(dsn); err != nil {
		return nil, nil, err
	}
	logging.Info("Connected to Postgres (sqlx)")

	if err := db.RunMigrations(db.DB); err != nil {
		return nil, nil, err
	}

	gdb, err := db.InitPostgresORM(dsn)
	if err != nil {
		return nil, nil, err
	}
	return gdb, db.DB, nil
}

func openCache(cfg *config.Config) common.CacheInterface {
	if cfg.CacheDriver == "redis" {
		client := common.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		return common.NewRedisCacheService(client, constants.RedisKeyPrefix)
	}
	return common.NewCacheService(30*time.Minute, 10*time.Minute)
}
