package repository

import (
	"context"

	"ava-assistant/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Patient, error)
	// MaxIDSuffix returns the highest numeric suffix currently assigned,
	// or 0 when the directory is empty.
	MaxIDSuffix(ctx context.Context, db *gorm.DB) (int, error)
}
