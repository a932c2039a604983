package domain

import "time"

type SystemMetrics struct {
	CPUPercent    float64       `json:"cpu_percent"`
	MemoryTotal   uint64        `json:"memory_total"`
	MemoryUsed    uint64        `json:"memory_used"`
	MemoryPercent float64       `json:"memory_percent"`
	DiskTotal     uint64        `json:"disk_total"`
	DiskUsed      uint64        `json:"disk_used"`
	DiskPercent   float64       `json:"disk_percent"`
	Goroutines    int           `json:"goroutines"`
	Uptime        time.Duration `json:"uptime"`
	Timestamp     time.Time     `json:"timestamp"`
}

type QueueMetrics struct {
	PendingJobs   int64     `json:"pending_jobs"`
	ActiveJobs    int64     `json:"active_jobs"`
	RetryJobs     int64     `json:"retry_jobs"`
	ArchivedJobs  int64     `json:"archived_jobs"`
	ProcessedJobs int64     `json:"processed_jobs"`
	FailedJobs    int64     `json:"failed_jobs"`
	Timestamp     time.Time `json:"timestamp"`
}

type StoreMetrics struct {
	Plays     int       `json:"plays"`
	Timestamp time.Time `json:"timestamp"`
}
