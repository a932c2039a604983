package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/orchids/plays-registry/internal/config"
	"github.com/orchids/plays-registry/internal/queue"
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
	log.Info(context.Background(), "Starting plays worker", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"concurrency": cfg.Worker.Concurrency,
	})

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatal(context.Background(), "Failed to initialize Redis", err, nil)
	}
	defer redisClient.Close()
	log.Info(context.Background(), "Redis connection established", nil)

	probeService := service.NewProbeService(cfg.Worker.ProbeTimeout, log)
	viewTracker := service.NewViewTracker(redisClient)

	probeHandler := queue.NewProbeVideoHandler(probeService, log)
	purgeHandler := queue.NewPurgeViewsHandler(viewTracker, log)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				queue.QueueDefault: 3,
				queue.QueueLow:     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error(ctx, "task execution failed", err, map[string]interface{}{
					"task_type": task.Type(),
					"payload":   string(task.Payload()),
				})
			}),
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				delays := []time.Duration{
					10 * time.Second,
					1 * time.Minute,
					5 * time.Minute,
				}
				if n < len(delays) {
					return delays[n]
				}
				return delays[len(delays)-1]
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeProbeVideo, probeHandler.ProcessTask)
	mux.HandleFunc(queue.TypePurgeViews, purgeHandler.ProcessTask)

	go func() {
		log.Info(context.Background(), "Worker server starting", map[string]interface{}{
			"concurrency": cfg.Worker.Concurrency,
		})
		if err := srv.Run(mux); err != nil {
			log.Fatal(context.Background(), "Worker server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(context.Background(), "Shutting down worker server...", nil)

	srv.Shutdown()

	log.Info(context.Background(), "Worker server exited gracefully", nil)
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
