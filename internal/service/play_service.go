package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/metrics"
	"github.com/orchids/plays-registry/internal/repository"
	"github.com/orchids/plays-registry/pkg/logger"
)

// TaskEnqueuer schedules background work for plays.
type TaskEnqueuer interface {
	EnqueueProbe(ctx context.Context, playID, videoPath string) error
	EnqueuePurge(ctx context.Context, playID string) error
}

type noopEnqueuer struct{}

func (noopEnqueuer) EnqueueProbe(context.Context, string, string) error { return nil }
func (noopEnqueuer) EnqueuePurge(context.Context, string) error         { return nil }

// PlayService sits between the HTTP handlers and the play store. The store
// decides ordering and cursor validity; everything around it (views, audit,
// background tasks) is best effort and never fails a request.
type PlayService struct {
	store repository.PlayStore
	views ViewCounter
	tasks TaskEnqueuer
	audit Auditor
	log   *logger.Logger
}

// NewPlayService accepts nil for views, tasks and audit; those concerns are
// then disabled.
func NewPlayService(
	store repository.PlayStore,
	views ViewCounter,
	tasks TaskEnqueuer,
	audit Auditor,
	log *logger.Logger,
) *PlayService {
	if views == nil {
		views = noopViewCounter{}
	}
	if tasks == nil {
		tasks = noopEnqueuer{}
	}
	if audit == nil {
		audit = noopAuditor{}
	}
	return &PlayService{
		store: store,
		views: views,
		tasks: tasks,
		audit: audit,
		log:   log,
	}
}

// Create stores a play. title and videoPath are expected to be normalized
// already.
func (s *PlayService) Create(ctx context.Context, title, videoPath string) (*domain.Play, error) {
	candidate := domain.Play{Title: title, VideoPath: videoPath}
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	play := s.store.Create(title, videoPath)

	metrics.PlaysCreatedTotal.Inc()
	metrics.PlaysStored.Set(float64(s.store.Len()))

	s.log.Info(ctx, "play created", map[string]interface{}{
		"play_id": play.ID,
		"title":   play.Title,
	})

	s.audit.Log(ctx, domain.ActionPlayCreate, play.ID, map[string]interface{}{
		"title":      play.Title,
		"video_path": play.VideoPath,
	})

	if err := s.tasks.EnqueueProbe(ctx, play.ID, play.VideoPath); err != nil {
		s.log.Warn(ctx, "failed to enqueue video probe", map[string]interface{}{
			"play_id": play.ID,
			"error":   err.Error(),
		})
	}

	return play, nil
}

func (s *PlayService) Get(ctx context.Context, id string) (*domain.Play, error) {
	play, ok := s.store.Get(id)
	metrics.RecordLookup(ok)
	if !ok {
		return nil, domain.ErrPlayNotFound
	}

	if err := s.views.RecordView(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to record play view", map[string]interface{}{
			"play_id": id,
			"error":   err.Error(),
		})
	}

	return play, nil
}

// Delete removes a play; ErrPlayNotFound reports that nothing was removed.
func (s *PlayService) Delete(ctx context.Context, id string) error {
	deleted := s.store.Delete(id)
	metrics.RecordDelete(deleted)
	if !deleted {
		return domain.ErrPlayNotFound
	}

	metrics.PlaysStored.Set(float64(s.store.Len()))

	s.log.Info(ctx, "play deleted", map[string]interface{}{
		"play_id": id,
	})

	s.audit.Log(ctx, domain.ActionPlayDelete, id, nil)

	if err := s.tasks.EnqueuePurge(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to enqueue view purge, purging inline", map[string]interface{}{
			"play_id": id,
			"error":   err.Error(),
		})
		if err := s.views.Purge(ctx, id); err != nil {
			s.log.Warn(ctx, "failed to purge play views", map[string]interface{}{
				"play_id": id,
				"error":   err.Error(),
			})
		}
	}

	return nil
}

func (s *PlayService) List(ctx context.Context, query domain.ListQuery) (*domain.PlayPage, error) {
	filtered := query.TitlePrefix != ""

	page, err := s.store.List(query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			metrics.RecordList("invalid_cursor", filtered)
			s.log.Debug(ctx, "rejected list cursor", map[string]interface{}{
				"cursor":       query.Cursor,
				"title_prefix": query.TitlePrefix,
			})
			s.audit.Log(ctx, domain.ActionCursorRejected, query.Cursor, map[string]interface{}{
				"title_prefix": query.TitlePrefix,
			})
		}
		return nil, err
	}

	metrics.RecordList("ok", filtered)
	return page, nil
}

// Stats reports view counters; it fails with ErrPlayNotFound for unknown ids
// so stale counters of deleted plays are never served.
func (s *PlayService) Stats(ctx context.Context, id string) (*domain.PlayStats, error) {
	if _, ok := s.store.Get(id); !ok {
		return nil, domain.ErrPlayNotFound
	}

	stats, err := s.views.GetStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load play stats: %w", err)
	}
	return stats, nil
}

func (s *PlayService) Count() int {
	return s.store.Len()
}
