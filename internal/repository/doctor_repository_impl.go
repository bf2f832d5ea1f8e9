package repository

import (
	"context"
	"errors"

	"ava-assistant/internal/domain/entity"
	domainRepo "ava-assistant/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Where("doctor_id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).Order("doctor_id ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindBySpecialty(ctx context.Context, db *gorm.DB, specialty string) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).Where("specialty = ?", specialty).Order("doctor_id ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
