package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/queue"
	"github.com/orchids/plays-registry/internal/service"
	"github.com/orchids/plays-registry/pkg/logger"
	"github.com/orchids/plays-registry/pkg/response"
	"github.com/orchids/plays-registry/pkg/validator"
)

// AuditReader reads back the audit trail.
type AuditReader interface {
	GetRecent(ctx context.Context, limit, offset int) ([]*domain.AuditLog, error)
	GetByPlay(ctx context.Context, playID string, limit, offset int) ([]*domain.AuditLog, error)
}

const maxAuditPageSize = 200

type AdminHandler struct {
	monitoring *service.MonitoringService
	inspector  *asynq.Inspector
	audit      AuditReader
	log        *logger.Logger
}

// NewAdminHandler accepts a nil inspector when the task queue is disabled and
// a nil audit reader when auditing is disabled.
func NewAdminHandler(monitoring *service.MonitoringService, inspector *asynq.Inspector, audit AuditReader, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		monitoring: monitoring,
		inspector:  inspector,
		audit:      audit,
		log:        log,
	}
}

func (h *AdminHandler) GetSystemMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	metrics, err := h.monitoring.GetAllMetrics(ctx)
	if err != nil {
		h.log.Error(ctx, "failed to collect system metrics", err, nil)
		response.InternalError(c, "Failed to collect system metrics")
		return
	}

	response.Success(c, http.StatusOK, metrics)
}

func (h *AdminHandler) GetQueueStats(c *gin.Context) {
	ctx := c.Request.Context()

	if h.inspector == nil {
		response.ServiceUnavailable(c, "Task queue is disabled")
		return
	}

	stats := make(gin.H, 2)
	for _, name := range []string{queue.QueueDefault, queue.QueueLow} {
		info, err := h.inspector.GetQueueInfo(name)
		if err != nil {
			h.log.Warn(ctx, "failed to get queue stats", map[string]interface{}{
				"queue": name,
				"error": err.Error(),
			})
			continue
		}
		stats[name] = gin.H{
			"active":    info.Active,
			"pending":   info.Pending,
			"scheduled": info.Scheduled,
			"retry":     info.Retry,
			"archived":  info.Archived,
			"completed": info.Completed,
			"processed": info.Processed,
			"failed":    info.Failed,
			"paused":    info.Paused,
			"size":      info.Size,
		}
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	ctx := c.Request.Context()

	if h.audit == nil {
		response.ServiceUnavailable(c, "Audit log is disabled")
		return
	}

	limit, err := validator.ParseLimit(c.Query("limit"), 50, maxAuditPageSize)
	if err != nil {
		response.ValidationError(c, "limit", err.Error())
		return
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			response.ValidationError(c, "offset", "offset must be a non-negative integer")
			return
		}
	}

	var logs []*domain.AuditLog
	if playID := c.Query("play_id"); playID != "" {
		id, parseErr := validator.ValidateUUID(playID)
		if parseErr != nil {
			response.ValidationError(c, "play_id", "Invalid play ID format")
			return
		}
		logs, err = h.audit.GetByPlay(ctx, id.String(), limit, offset)
	} else {
		logs, err = h.audit.GetRecent(ctx, limit, offset)
	}
	if err != nil {
		h.log.Error(ctx, "failed to read audit log", err, nil)
		response.InternalError(c, "Failed to read audit log")
		return
	}
	if logs == nil {
		logs = []*domain.AuditLog{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"data":   logs,
		"limit":  limit,
		"offset": offset,
	})
}
