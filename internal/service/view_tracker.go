package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/orchids/plays-registry/internal/domain"
	"github.com/redis/go-redis/v9"
)

const hourWindow = time.Hour

// ViewCounter records play fetches. Implementations must tolerate ids they
// have never seen.
type ViewCounter interface {
	RecordView(ctx context.Context, playID string) error
	GetStats(ctx context.Context, playID string) (*domain.PlayStats, error)
	Purge(ctx context.Context, playID string) error
}

// ViewTracker keeps per-play counters in Redis. The hour counter is a sorted
// set of view timestamps so it always covers the trailing hour.
type ViewTracker struct {
	redis *redis.Client
	now   func() time.Time
}

func NewViewTracker(redisClient *redis.Client) *ViewTracker {
	return &ViewTracker{
		redis: redisClient,
		now:   time.Now,
	}
}

func totalViewsKey(playID string) string { return fmt.Sprintf("play:views:%s:total", playID) }
func todayViewsKey(playID string) string { return fmt.Sprintf("play:views:%s:today", playID) }
func hourViewsKey(playID string) string  { return fmt.Sprintf("play:views:%s:hour", playID) }

func (vt *ViewTracker) RecordView(ctx context.Context, playID string) error {
	now := vt.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	pipe := vt.redis.Pipeline()

	pipe.Incr(ctx, totalViewsKey(playID))

	todayKey := todayViewsKey(playID)
	pipe.Incr(ctx, todayKey)
	pipe.ExpireAt(ctx, todayKey, midnight)

	hourKey := hourViewsKey(playID)
	pipe.ZAdd(ctx, hourKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: uuid.NewString(),
	})
	pipe.ZRemRangeByScore(ctx, hourKey, "-inf", strconv.FormatInt(now.Add(-hourWindow).UnixMilli(), 10))
	pipe.Expire(ctx, hourKey, hourWindow)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update view counters: %w", err)
	}

	return nil
}

func (vt *ViewTracker) GetStats(ctx context.Context, playID string) (*domain.PlayStats, error) {
	total, err := vt.counter(ctx, totalViewsKey(playID))
	if err != nil {
		return nil, err
	}
	today, err := vt.counter(ctx, todayViewsKey(playID))
	if err != nil {
		return nil, err
	}
	hour, err := vt.hourCount(ctx, playID)
	if err != nil {
		return nil, err
	}

	return &domain.PlayStats{
		PlayID:     playID,
		TotalViews: total,
		TodayViews: today,
		HourViews:  hour,
	}, nil
}

func (vt *ViewTracker) Purge(ctx context.Context, playID string) error {
	err := vt.redis.Del(ctx, totalViewsKey(playID), todayViewsKey(playID), hourViewsKey(playID)).Err()
	if err != nil {
		return fmt.Errorf("failed to purge view counters: %w", err)
	}
	return nil
}

func (vt *ViewTracker) counter(ctx context.Context, key string) (int64, error) {
	count, err := vt.redis.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return count, nil
}

func (vt *ViewTracker) hourCount(ctx context.Context, playID string) (int64, error) {
	since := vt.now().Add(-hourWindow).UnixMilli()
	count, err := vt.redis.ZCount(ctx, hourViewsKey(playID), "("+strconv.FormatInt(since, 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count hourly views: %w", err)
	}
	return count, nil
}

type noopViewCounter struct{}

func (noopViewCounter) RecordView(context.Context, string) error { return nil }

func (noopViewCounter) GetStats(_ context.Context, playID string) (*domain.PlayStats, error) {
	return &domain.PlayStats{PlayID: playID}, nil
}

func (noopViewCounter) Purge(context.Context, string) error { return nil }
