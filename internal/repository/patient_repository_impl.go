package repository

import (
	"context"
	"errors"

	"ava-assistant/internal/domain/entity"
	domainRepo "ava-assistant/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("patient_id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// MaxIDSuffix extracts the numeric part of patient_id in SQL so the result
// can be computed inside the registration transaction.
func (r *patientRepository) MaxIDSuffix(ctx context.Context, db *gorm.DB) (int, error) {
	var max *int
	err := db.WithContext(ctx).Model(&entity.Patient{}).
		Select("MAX(CAST(SUBSTRING(patient_id FROM ?) AS INTEGER))", len(entity.PatientIDPrefix)+1).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
