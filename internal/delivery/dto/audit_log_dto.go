package dto

import (
	"time"

	"ava-assistant/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	SessionID string      `json:"session_id,omitempty"`
	PatientID string      `json:"patient_id,omitempty"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditTrailResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
