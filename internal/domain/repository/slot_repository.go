package repository

import (
	"context"
	"time"

	"ava-assistant/internal/domain/entity"

	"gorm.io/gorm"
)

type SlotRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Slot, error)
	FindByKey(ctx context.Context, db *gorm.DB, doctorID string, slotDate time.Time, startTime string) (*entity.Slot, error)
	// FindOpenBySpecialty lists Open slots joined through doctors,
	// ordered ascending by (slot_date, start_time).
	FindOpenBySpecialty(ctx context.Context, db *gorm.DB, specialty string) ([]entity.Slot, error)
	// FindOpenByDoctor lists a doctor's Open slots in (date, time) order,
	// capped at limit when limit > 0.
	FindOpenByDoctor(ctx context.Context, db *gorm.DB, doctorID string, limit int) ([]entity.Slot, error)
	// Fill flips the matching slot from Open to Filled with a conditional
	// single-row update. Returns affected rows: 1 = success, 0 = no Open
	// row matched (missing or already Filled).
	Fill(ctx context.Context, db *gorm.DB, doctorID string, slotDate time.Time, startTime string) (int64, error)
}
