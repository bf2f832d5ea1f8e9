package repository

import (
	"context"

	"ava-assistant/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
	FindBySpecialty(ctx context.Context, db *gorm.DB, specialty string) ([]entity.Doctor, error)
}
