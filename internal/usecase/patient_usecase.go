package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/domain/entity"
	"ava-assistant/internal/domain/repository"
	"ava-assistant/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientIDNotFound = errors.New("patient id not found")
	ErrNameMismatch      = errors.New("name does not match patient record")
	ErrInvalidBirthDate  = errors.New("invalid date of birth format, use YYYY-MM-DD")
)

type PatientUsecase interface {
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
	// Verify matches a returning patient by identifier and checks the
	// supplied name against the record.
	Verify(ctx context.Context, name, id string) (*entity.Patient, error)
	// Register appends a new record with the next AVP identifier.
	Register(ctx context.Context, req *dto.RegisterPatientRequest) (*entity.Patient, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientIDNotFound
	}
	return patient, nil
}

// Verify looks up a returning patient. The name check is lenient: the
// supplied name only has to match the record's first, last or full name,
// case-insensitively, since patients type it free-form.
func (u *patientUsecase) Verify(ctx context.Context, name, id string) (*entity.Patient, error) {
	patient, err := u.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplied := strings.ToLower(strings.TrimSpace(name))
	if supplied != strings.ToLower(patient.FullName()) &&
		supplied != strings.ToLower(patient.FirstName) &&
		supplied != strings.ToLower(patient.LastName) {
		return nil, ErrNameMismatch
	}

	return patient, nil
}

// Register assigns the next identifier and appends the record. The
// max-suffix query and the insert run in one transaction so concurrent
// registrations are serialized at the storage layer instead of racing on
// the same identifier.
func (u *patientUsecase) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*entity.Patient, error) {
	patient := &entity.Patient{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Gender:        req.Gender,
		Symptom:       req.Symptom,
		TravelingFrom: req.TravelingFrom,
		RiskCategory:  entity.RiskCategoryLow,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		patient.DateOfBirth = &dob
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxSuffix, err := u.patientRepo.MaxIDSuffix(ctx, tx)
		if err != nil {
			return err
		}
		patient.PatientID = entity.NextPatientID(maxSuffix)
		return u.patientRepo.Create(ctx, tx, patient)
	})
	if err != nil {
		u.log.Warnf("Failed to register patient: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, patient.PatientID, entity.AuditActionPatientRegister, entity.JSON{
		"name": patient.FullName(),
	})

	u.log.Infof("Patient registered: id=%s, name=%s", patient.PatientID, patient.FullName())
	return patient, nil
}
