package repository

import (
	"ava-assistant/internal/domain/entity"
	domainRepo "ava-assistant/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
