package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/orchids/plays-registry/pkg/logger"
)

const (
	QueueDefault = "default"
	QueueLow     = "low"
)

type QueueClient struct {
	client *asynq.Client
	logger *logger.Logger
}

func NewQueueClient(redisOpt asynq.RedisConnOpt, logger *logger.Logger) *QueueClient {
	return &QueueClient{
		client: asynq.NewClient(redisOpt),
		logger: logger,
	}
}

func (q *QueueClient) Close() error {
	return q.client.Close()
}

func (q *QueueClient) EnqueueProbe(ctx context.Context, playID, videoPath string) error {
	task, err := NewProbeVideoTask(ProbeVideoPayload{PlayID: playID, VideoPath: videoPath})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(2 * time.Minute),
		asynq.Queue(QueueDefault),
	}

	return q.enqueue(ctx, task, playID, opts...)
}

func (q *QueueClient) EnqueuePurge(ctx context.Context, playID string) error {
	task, err := NewPurgeViewsTask(PurgeViewsPayload{PlayID: playID})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		asynq.Queue(QueueLow),
	}

	return q.enqueue(ctx, task, playID, opts...)
}

func (q *QueueClient) enqueue(ctx context.Context, task *asynq.Task, playID string, opts ...asynq.Option) error {
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		q.logger.Error(ctx, "failed to enqueue task", err, map[string]interface{}{
			"task_type": task.Type(),
			"play_id":   playID,
		})
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	q.logger.Info(ctx, "task enqueued", map[string]interface{}{
		"task_type": task.Type(),
		"play_id":   playID,
		"task_id":   info.ID,
		"queue":     info.Queue,
	})

	return nil
}
