package repository

import (
	"context"

	"github.com/orchids/plays-registry/internal/domain"
)

// PlayStore is the ordered play collection. Absence is reported through the
// boolean results; List fails only with domain.ErrInvalidCursor.
type PlayStore interface {
	Create(title, videoPath string) *domain.Play
	Get(id string) (*domain.Play, bool)
	Delete(id string) bool
	List(query domain.ListQuery) (*domain.PlayPage, error)
	Len() int
	Clear()
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	GetRecent(ctx context.Context, limit, offset int) ([]*domain.AuditLog, error)
	GetByPlay(ctx context.Context, playID string, limit, offset int) ([]*domain.AuditLog, error)
}
