package repository

import (
	"context"
	"errors"
	"time"

	"ava-assistant/internal/domain/entity"
	domainRepo "ava-assistant/internal/domain/repository"

	"gorm.io/gorm"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.WithContext(ctx).Preload("Doctor").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByKey(ctx context.Context, db *gorm.DB, doctorID string, slotDate time.Time, startTime string) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND slot_date = ? AND start_time = ?", doctorID, slotDate, startTime).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindOpenBySpecialty(ctx context.Context, db *gorm.DB, specialty string) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.WithContext(ctx).
		Joins("JOIN doctors ON doctors.doctor_id = slots.doctor_id").
		Where("doctors.specialty = ? AND slots.status = ?", specialty, entity.SlotStatusOpen).
		Preload("Doctor").
		Order("slots.slot_date ASC, slots.start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindOpenByDoctor(ctx context.Context, db *gorm.DB, doctorID string, limit int) ([]entity.Slot, error) {
	query := db.WithContext(ctx).
		Where("doctor_id = ? AND status = ?", doctorID, entity.SlotStatusOpen).
		Order("slot_date ASC, start_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var slots []entity.Slot
	if err := query.Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Fill is the single state mutation of the booking flow. The status
// predicate makes it a compare-and-swap: a slot already flipped to Filled
// by another session matches zero rows instead of silently re-confirming.
func (r *slotRepository) Fill(ctx context.Context, db *gorm.DB, doctorID string, slotDate time.Time, startTime string) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Slot{}).
		Where("doctor_id = ? AND slot_date = ? AND start_time = ? AND status = ?",
			doctorID, slotDate, startTime, entity.SlotStatusOpen).
		Update("status", entity.SlotStatusFilled)
	return result.RowsAffected, result.Error
}
