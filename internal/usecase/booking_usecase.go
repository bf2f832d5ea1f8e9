package usecase

import (
	"context"
	"errors"
	"time"

	"ava-assistant/internal/domain/entity"
	"ava-assistant/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrNoProviderForSpecialty = errors.New("no doctor available for this specialty")
	ErrNoSlotsAvailable       = errors.New("no open slots available")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrSlotAlreadyFilled      = errors.New("slot was just booked by another patient")
	ErrInvalidSlotDate        = errors.New("invalid slot date format, use YYYY-MM-DD")
)

// rescheduleLimit caps the alternatives offered in the reschedule sub-flow.
const rescheduleLimit = 3

type BookingUsecase interface {
	Doctors(ctx context.Context) ([]entity.Doctor, error)
	DoctorsBySpecialty(ctx context.Context, specialty string) ([]entity.Doctor, error)
	// OpenSlotsBySpecialty lists bookable slots, distinguishing "no doctor
	// practices this specialty" from "doctors exist but are fully booked".
	OpenSlotsBySpecialty(ctx context.Context, specialty string) ([]entity.Slot, error)
	OpenSlotsByDoctor(ctx context.Context, doctorID string) ([]entity.Slot, error)
	GetSlot(ctx context.Context, slotID int) (*entity.Slot, error)
	// FillSlot transitions the slot from Open to Filled. The losing side of
	// a concurrent booking gets ErrSlotAlreadyFilled and must re-query.
	FillSlot(ctx context.Context, doctorID, slotDate, startTime string) error
	// RescheduleOptions returns up to 3 open slots for the doctor, sorted
	// ascending by (date, time).
	RescheduleOptions(ctx context.Context, doctorID string) ([]entity.Slot, error)
}

type bookingUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	slotRepo   repository.SlotRepository
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	slotRepo repository.SlotRepository,
) BookingUsecase {
	return &bookingUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
		slotRepo:   slotRepo,
	}
}

func (u *bookingUsecase) Doctors(ctx context.Context) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return doctors, nil
}

func (u *bookingUsecase) DoctorsBySpecialty(ctx context.Context, specialty string) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.FindBySpecialty(ctx, u.db, specialty)
	if err != nil {
		u.log.Warnf("Failed to list doctors for %s: %+v", specialty, err)
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, ErrNoProviderForSpecialty
	}
	return doctors, nil
}

func (u *bookingUsecase) OpenSlotsBySpecialty(ctx context.Context, specialty string) ([]entity.Slot, error) {
	if _, err := u.DoctorsBySpecialty(ctx, specialty); err != nil {
		return nil, err
	}

	slots, err := u.slotRepo.FindOpenBySpecialty(ctx, u.db, specialty)
	if err != nil {
		u.log.Warnf("Failed to list open slots for %s: %+v", specialty, err)
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNoSlotsAvailable
	}
	return slots, nil
}

func (u *bookingUsecase) OpenSlotsByDoctor(ctx context.Context, doctorID string) ([]entity.Slot, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	slots, err := u.slotRepo.FindOpenByDoctor(ctx, u.db, doctorID, 0)
	if err != nil {
		u.log.Warnf("Failed to list slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return slots, nil
}

func (u *bookingUsecase) GetSlot(ctx context.Context, slotID int) (*entity.Slot, error) {
	slot, err := u.slotRepo.FindByID(ctx, u.db, slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", slotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	return slot, nil
}

// FillSlot books the slot. When the conditional update matches nothing, a
// follow-up read tells the caller whether the slot vanished or lost a race
// to another session.
func (u *bookingUsecase) FillSlot(ctx context.Context, doctorID, slotDate, startTime string) error {
	date, err := time.Parse("2006-01-02", slotDate)
	if err != nil {
		return ErrInvalidSlotDate
	}

	affected, err := u.slotRepo.Fill(ctx, u.db, doctorID, date, startTime)
	if err != nil {
		u.log.Warnf("Failed to fill slot %s %s %s: %+v", doctorID, slotDate, startTime, err)
		return err
	}
	if affected > 0 {
		u.log.Infof("Slot filled: doctor=%s, date=%s, time=%s", doctorID, slotDate, startTime)
		return nil
	}

	slot, err := u.slotRepo.FindByKey(ctx, u.db, doctorID, date, startTime)
	if err != nil {
		u.log.Warnf("Failed to re-check slot %s %s %s: %+v", doctorID, slotDate, startTime, err)
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	return ErrSlotAlreadyFilled
}

func (u *bookingUsecase) RescheduleOptions(ctx context.Context, doctorID string) ([]entity.Slot, error) {
	slots, err := u.slotRepo.FindOpenByDoctor(ctx, u.db, doctorID, rescheduleLimit)
	if err != nil {
		u.log.Warnf("Failed to list reschedule options for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return slots, nil
}
