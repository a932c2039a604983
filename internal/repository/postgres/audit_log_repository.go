package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orchids/plays-registry/internal/domain"
)

const auditLogSchema = `
	CREATE TABLE IF NOT EXISTS play_audit_logs (
		id          UUID PRIMARY KEY,
		request_id  TEXT NOT NULL DEFAULT '',
		action      TEXT NOT NULL,
		play_id     TEXT NOT NULL DEFAULT '',
		ip_address  TEXT NOT NULL DEFAULT '',
		user_agent  TEXT NOT NULL DEFAULT '',
		details     JSONB,
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_play_audit_logs_play_id ON play_audit_logs (play_id, created_at DESC);
`

type AuditLogRepository struct {
	db *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// EnsureSchema creates the audit table when it does not exist yet.
func (r *AuditLogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, auditLogSchema); err != nil {
		return fmt.Errorf("failed to create audit schema: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	detailsJSON, err := json.Marshal(log.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	query := `
	INSERT INTO play_audit_logs (id, request_id, action, play_id, ip_address, user_agent, details, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Exec(ctx, query,
		log.ID, log.RequestID, log.Action, log.PlayID,
		log.IPAddress, log.UserAgent, detailsJSON, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) GetRecent(ctx context.Context, limit, offset int) ([]*domain.AuditLog, error) {
	query := `
	SELECT id, request_id, action, play_id, ip_address, user_agent, details, created_at
	FROM play_audit_logs
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	return scanAuditLogs(rows)
}

func (r *AuditLogRepository) GetByPlay(ctx context.Context, playID string, limit, offset int) ([]*domain.AuditLog, error) {
	query := `
	SELECT id, request_id, action, play_id, ip_address, user_agent, details, created_at
	FROM play_audit_logs
	WHERE play_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, playID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs for play: %w", err)
	}
	return scanAuditLogs(rows)
}

func scanAuditLogs(rows pgx.Rows) ([]*domain.AuditLog, error) {
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		log := &domain.AuditLog{}
		var detailsJSON []byte

		err := rows.Scan(
			&log.ID, &log.RequestID, &log.Action, &log.PlayID,
			&log.IPAddress, &log.UserAgent, &detailsJSON, &log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}

		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &log.Details); err != nil {
				return nil, fmt.Errorf("failed to decode audit details: %w", err)
			}
		}

		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return logs, nil
}
