package usecase

import (
	"context"
	"errors"

	"ava-assistant/internal/converter"
	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidSessionID = errors.New("invalid session id")

type AuditLogUsecase interface {
	// GetSessionAuditTrail lists the recorded mutations of one session,
	// oldest first.
	GetSessionAuditTrail(ctx context.Context, sessionID string) (*dto.AuditTrailResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetSessionAuditTrail(ctx context.Context, sessionID string) (*dto.AuditTrailResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, ErrInvalidSessionID
	}

	logs, err := u.auditLogRepo.FindBySessionID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit logs for session %s: %+v", sessionID, err)
		return nil, err
	}

	return &dto.AuditTrailResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
