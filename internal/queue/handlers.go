package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/orchids/plays-registry/internal/metrics"
	"github.com/orchids/plays-registry/internal/service"
	"github.com/orchids/plays-registry/pkg/logger"
)

// Prober inspects a video reference.
type Prober interface {
	Probe(ctx context.Context, videoPath string) (*service.VideoMetadata, error)
}

type ProbeVideoHandler struct {
	prober Prober
	logger *logger.Logger
}

func NewProbeVideoHandler(prober Prober, logger *logger.Logger) *ProbeVideoHandler {
	return &ProbeVideoHandler{
		prober: prober,
		logger: logger,
	}
}

func (h *ProbeVideoHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProbeVideoPayload(task)
	if err != nil {
		h.logger.Error(ctx, "failed to parse probe payload", err, nil)
		metrics.ProbeTasksTotal.WithLabelValues("bad_payload").Inc()
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("parse payload: %v: %w", err, asynq.SkipRetry)
	}

	meta, err := h.prober.Probe(ctx, payload.VideoPath)
	if err != nil {
		h.logger.Warn(ctx, "video probe failed", map[string]interface{}{
			"play_id":    payload.PlayID,
			"video_path": payload.VideoPath,
			"error":      err.Error(),
		})
		metrics.ProbeTasksTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("probe video: %w", err)
	}

	h.logger.Info(ctx, "video probe completed", map[string]interface{}{
		"play_id":    payload.PlayID,
		"duration":   meta.Duration,
		"resolution": meta.Resolution(),
		"codec":      meta.VideoCodec,
	})
	metrics.ProbeTasksTotal.WithLabelValues("ok").Inc()

	return nil
}

// Purger removes per-play state once a play is deleted.
type Purger interface {
	Purge(ctx context.Context, playID string) error
}

type PurgeViewsHandler struct {
	purger Purger
	logger *logger.Logger
}

func NewPurgeViewsHandler(purger Purger, logger *logger.Logger) *PurgeViewsHandler {
	return &PurgeViewsHandler{
		purger: purger,
		logger: logger,
	}
}

func (h *PurgeViewsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := ParsePurgeViewsPayload(task)
	if err != nil {
		h.logger.Error(ctx, "failed to parse purge payload", err, nil)
		return fmt.Errorf("parse payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.purger.Purge(ctx, payload.PlayID); err != nil {
		return fmt.Errorf("purge views: %w", err)
	}

	h.logger.Debug(ctx, "play views purged", map[string]interface{}{
		"play_id": payload.PlayID,
	})

	return nil
}
