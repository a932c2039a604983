package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        uuid.UUID              `json:"id"`
	RequestID string                 `json:"request_id,omitempty"`
	Action    string                 `json:"action"`
	PlayID    string                 `json:"play_id,omitempty"`
	IPAddress string                 `json:"ip_address,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func NewAuditLog(requestID, action, playID, ipAddress, userAgent string, details map[string]interface{}) *AuditLog {
	return &AuditLog{
		ID:        uuid.New(),
		RequestID: requestID,
		Action:    action,
		PlayID:    playID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
}

const (
	ActionPlayCreate     = "play.create"
	ActionPlayDelete     = "play.delete"
	ActionCursorRejected = "play.cursor_rejected"
)
