package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/orchids/plays-registry/internal/config"
	"github.com/orchids/plays-registry/internal/handler"
	"github.com/orchids/plays-registry/internal/queue"
	"github.com/orchids/plays-registry/internal/repository/memory"
	"github.com/orchids/plays-registry/internal/repository/postgres"
	"github.com/orchids/plays-registry/internal/service"
	"github.com/orchids/plays-registry/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Environment, cfg.LogLevel)
	log.Info(context.Background(), "Starting plays registry", map[string]interface{}{
		"environment":   cfg.Server.Environment,
		"port":          cfg.Server.Port,
		"redis_enabled": cfg.Redis.Enabled,
		"audit_enabled": cfg.Database.Enabled,
	})

	store := memory.NewPlayStore()

	var (
		views     service.ViewCounter
		tasks     service.TaskEnqueuer
		auditor   service.Auditor
		auditLogs handler.AuditReader
		inspector *asynq.Inspector
	)

	var checks []namedCheck

	if cfg.Redis.Enabled {
		redisClient, err := initRedis(cfg)
		if err != nil {
			log.Fatal(context.Background(), "Failed to initialize Redis", err, nil)
		}
		defer redisClient.Close()
		log.Info(context.Background(), "Redis connection established", nil)

		redisOpt := asynqRedisOpt(cfg)
		queueClient := queue.NewQueueClient(redisOpt, log)
		defer queueClient.Close()

		inspector = asynq.NewInspector(redisOpt)
		defer inspector.Close()

		views = service.NewViewTracker(redisClient)
		tasks = queueClient
		checks = append(checks, namedCheck{"redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	if cfg.Database.Enabled {
		dbPool, err := initDatabase(cfg)
		if err != nil {
			log.Fatal(context.Background(), "Failed to initialize database", err, nil)
		}
		defer dbPool.Close()
		log.Info(context.Background(), "Database connection established", nil)

		auditRepo := postgres.NewAuditLogRepository(dbPool)
		if err := auditRepo.EnsureSchema(context.Background()); err != nil {
			log.Fatal(context.Background(), "Failed to prepare audit log schema", err, nil)
		}

		auditService := service.NewAuditService(auditRepo, log)
		defer auditService.Wait()

		auditor = auditService
		auditLogs = auditService
		checks = append(checks, namedCheck{"database", dbPool.Ping})
	}

	playService := service.NewPlayService(store, views, tasks, auditor, log)

	monitoringService := service.NewMonitoringService(store, inspector)
	for _, check := range checks {
		monitoringService.AddCheck(check.name, check.fn)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Config:     cfg,
		Log:        log,
		Plays:      playService,
		Monitoring: monitoringService,
		Inspector:  inspector,
		AuditLogs:  auditLogs,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(context.Background(), "HTTP server starting", map[string]interface{}{
			"address": cfg.Server.Address(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(context.Background(), "Failed to start server", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(context.Background(), "Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error(context.Background(), "Server forced to shutdown", err, nil)
		return
	}

	log.Info(context.Background(), "Server exited gracefully", nil)
}

type namedCheck struct {
	name string
	fn   service.HealthCheck
}

func initDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Address(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to connect to Redis: %w", err)
	}

	return client, nil
}

func asynqRedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}
