package service

import (
	"context"
	"sync"
	"time"

	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/repository"
	"github.com/orchids/plays-registry/pkg/logger"
)

type clientInfoKey struct{}

type clientInfo struct {
	ip        string
	userAgent string
}

// WithClientInfo stores caller details that end up in audit entries.
func WithClientInfo(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, clientInfoKey{}, clientInfo{ip: ip, userAgent: userAgent})
}

func clientInfoFromContext(ctx context.Context) clientInfo {
	if info, ok := ctx.Value(clientInfoKey{}).(clientInfo); ok {
		return info
	}
	return clientInfo{}
}

// Auditor records play lifecycle events. Log never fails the calling request.
type Auditor interface {
	Log(ctx context.Context, action, playID string, details map[string]interface{})
}

// AuditService writes entries in the background; Wait blocks until every
// pending write has finished.
type AuditService struct {
	repo    repository.AuditLogRepository
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAuditService(repo repository.AuditLogRepository, log *logger.Logger) *AuditService {
	return &AuditService{
		repo:    repo,
		log:     log,
		timeout: 5 * time.Second,
	}
}

func (s *AuditService) Log(ctx context.Context, action, playID string, details map[string]interface{}) {
	info := clientInfoFromContext(ctx)
	requestID := logger.RequestIDFromContext(ctx)

	entry := domain.NewAuditLog(requestID, action, playID, info.ip, info.userAgent, details)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		if err := s.repo.Create(writeCtx, entry); err != nil {
			s.log.Error(writeCtx, "failed to write audit log", err, map[string]interface{}{
				"action":  action,
				"play_id": playID,
			})
		}
	}()
}

func (s *AuditService) GetRecent(ctx context.Context, limit, offset int) ([]*domain.AuditLog, error) {
	return s.repo.GetRecent(ctx, limit, offset)
}

func (s *AuditService) GetByPlay(ctx context.Context, playID string, limit, offset int) ([]*domain.AuditLog, error) {
	return s.repo.GetByPlay(ctx, playID, limit, offset)
}

func (s *AuditService) Wait() {
	s.wg.Wait()
}

type noopAuditor struct{}

func (noopAuditor) Log(context.Context, string, string, map[string]interface{}) {}
