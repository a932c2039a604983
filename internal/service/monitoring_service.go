package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/hibiken/asynq"
	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/repository"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthCheck pings one external dependency.
type HealthCheck func(ctx context.Context) error

type MonitoringService struct {
	store     repository.PlayStore
	inspector *asynq.Inspector
	checks    map[string]HealthCheck
	startTime time.Time
}

// NewMonitoringService accepts a nil inspector when the task queue is disabled.
func NewMonitoringService(store repository.PlayStore, inspector *asynq.Inspector) *MonitoringService {
	return &MonitoringService{
		store:     store,
		inspector: inspector,
		checks:    make(map[string]HealthCheck),
		startTime: time.Now(),
	}
}

func (s *MonitoringService) AddCheck(name string, check HealthCheck) {
	s.checks[name] = check
}

func (s *MonitoringService) GetSystemMetrics(ctx context.Context) (*domain.SystemMetrics, error) {
	cpuPercent, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU usage: %w", err)
	}

	memStats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory stats: %w", err)
	}

	diskStats, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("failed to get disk stats: %w", err)
	}

	metrics := &domain.SystemMetrics{
		MemoryTotal:   memStats.Total,
		MemoryUsed:    memStats.Used,
		MemoryPercent: memStats.UsedPercent,
		DiskTotal:     diskStats.Total,
		DiskUsed:      diskStats.Used,
		DiskPercent:   diskStats.UsedPercent,
		Goroutines:    runtime.NumGoroutine(),
		Uptime:        time.Since(s.startTime),
		Timestamp:     time.Now(),
	}
	if len(cpuPercent) > 0 {
		metrics.CPUPercent = cpuPercent[0]
	}

	return metrics, nil
}

func (s *MonitoringService) GetQueueMetrics(ctx context.Context) (*domain.QueueMetrics, error) {
	if s.inspector == nil {
		return nil, domain.ErrQueueDisabled
	}

	queues, err := s.inspector.Queues()
	if err != nil {
		return nil, fmt.Errorf("failed to get queue list: %w", err)
	}

	metrics := &domain.QueueMetrics{Timestamp: time.Now()}
	for _, queue := range queues {
		info, err := s.inspector.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		metrics.PendingJobs += int64(info.Pending)
		metrics.ActiveJobs += int64(info.Active)
		metrics.RetryJobs += int64(info.Retry)
		metrics.ArchivedJobs += int64(info.Archived)
		metrics.ProcessedJobs += int64(info.Processed)
		metrics.FailedJobs += int64(info.Failed)
	}

	return metrics, nil
}

func (s *MonitoringService) GetStoreMetrics() *domain.StoreMetrics {
	return &domain.StoreMetrics{
		Plays:     s.store.Len(),
		Timestamp: time.Now(),
	}
}

// CheckHealth runs every registered check and reports per-dependency status.
func (s *MonitoringService) CheckHealth(ctx context.Context) (map[string]bool, bool) {
	results := make(map[string]bool, len(s.checks))
	healthy := true

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ok := s.checks[name](ctx) == nil
		results[name] = ok
		healthy = healthy && ok
	}

	return results, healthy
}

func (s *MonitoringService) GetAllMetrics(ctx context.Context) (map[string]interface{}, error) {
	systemMetrics, err := s.GetSystemMetrics(ctx)
	if err != nil {
		return nil, err
	}

	all := map[string]interface{}{
		"system": systemMetrics,
		"store":  s.GetStoreMetrics(),
	}

	queueMetrics, err := s.GetQueueMetrics(ctx)
	switch {
	case err == nil:
		all["queue"] = queueMetrics
	case !errors.Is(err, domain.ErrQueueDisabled):
		return nil, err
	}

	return all, nil
}
