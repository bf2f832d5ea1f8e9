package service

import (
	"context"

	"ava-assistant/internal/domain/entity"
	"ava-assistant/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records the mutating operations of the booking flow.
// Failures are logged, never surfaced: a lost audit row must not block a
// booking.
type AuditService interface {
	Record(ctx context.Context, sessionID *uuid.UUID, patientID string, action string, metadata entity.JSON)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, sessionID *uuid.UUID, patientID string, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		SessionID: sessionID,
		PatientID: patientID,
		Action:    action,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s: %+v", action, err)
	}
}
