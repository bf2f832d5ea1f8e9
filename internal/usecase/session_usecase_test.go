package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/domain/entity"
	"ava-assistant/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatients struct {
	patients map[string]*entity.Patient
	nextID   int
}

func newFakePatients(patients ...*entity.Patient) *fakePatients {
	f := &fakePatients{patients: map[string]*entity.Patient{}, nextID: 4000}
	for _, p := range patients {
		f.patients[p.PatientID] = p
	}
	return f
}

func (f *fakePatients) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, ErrPatientIDNotFound
	}
	return p, nil
}

func (f *fakePatients) Verify(ctx context.Context, name, id string) (*entity.Patient, error) {
	p, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(name), p.FullName()) {
		return nil, ErrNameMismatch
	}
	return p, nil
}

func (f *fakePatients) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*entity.Patient, error) {
	p := &entity.Patient{
		PatientID:     entity.FormatPatientID(f.nextID),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		RiskCategory:  entity.RiskCategoryLow,
		TravelingFrom: req.TravelingFrom,
	}
	f.nextID++
	f.patients[p.PatientID] = p
	return p, nil
}

type fakeBookings struct {
	doctors    []entity.Doctor
	slots      []entity.Slot
	fillErr    error
	fillErrs   []error
	reschedule []entity.Slot
}

func (f *fakeBookings) Doctors(ctx context.Context) ([]entity.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeBookings) DoctorsBySpecialty(ctx context.Context, specialty string) ([]entity.Doctor, error) {
	var matched []entity.Doctor
	for _, d := range f.doctors {
		if d.Specialty == specialty {
			matched = append(matched, d)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoProviderForSpecialty
	}
	return matched, nil
}

func (f *fakeBookings) OpenSlotsBySpecialty(ctx context.Context, specialty string) ([]entity.Slot, error) {
	if _, err := f.DoctorsBySpecialty(ctx, specialty); err != nil {
		return nil, err
	}
	var open []entity.Slot
	for _, s := range f.slots {
		if s.Status == entity.SlotStatusOpen && s.Doctor.Specialty == specialty {
			open = append(open, s)
		}
	}
	if len(open) == 0 {
		return nil, ErrNoSlotsAvailable
	}
	return open, nil
}

func (f *fakeBookings) OpenSlotsByDoctor(ctx context.Context, doctorID string) ([]entity.Slot, error) {
	var open []entity.Slot
	for _, s := range f.slots {
		if s.Status == entity.SlotStatusOpen && s.DoctorID == doctorID {
			open = append(open, s)
		}
	}
	return open, nil
}

func (f *fakeBookings) GetSlot(ctx context.Context, slotID int) (*entity.Slot, error) {
	for i := range f.slots {
		if f.slots[i].ID == slotID {
			return &f.slots[i], nil
		}
	}
	return nil, ErrSlotNotFound
}

func (f *fakeBookings) FillSlot(ctx context.Context, doctorID, slotDate, startTime string) error {
	if len(f.fillErrs) > 0 {
		err := f.fillErrs[0]
		f.fillErrs = f.fillErrs[1:]
		return err
	}
	return f.fillErr
}

func (f *fakeBookings) RescheduleOptions(ctx context.Context, doctorID string) ([]entity.Slot, error) {
	return f.reschedule, nil
}

type fakeWeather struct {
	report *service.WeatherReport
	err    error
}

func (f *fakeWeather) CurrentByCity(ctx context.Context, city string) (*service.WeatherReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	report := *f.report
	if report.City == "" {
		report.City = city
	}
	return &report, nil
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(ctx context.Context, sessionID *uuid.UUID, patientID string, action string, metadata entity.JSON) {
	f.actions = append(f.actions, action)
}

type sessionFixture struct {
	uc       SessionUsecase
	patients *fakePatients
	bookings *fakeBookings
	weather  *fakeWeather
	audit    *fakeAudit
}

func dentistSlots() []entity.Slot {
	doctor := entity.Doctor{DoctorID: "DOC-001", DoctorName: "Dr. Lee", Specialty: "Dentist"}
	return []entity.Slot{
		{ID: 1, DoctorID: "DOC-001", SlotDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00", Status: entity.SlotStatusOpen, Doctor: doctor},
		{ID: 2, DoctorID: "DOC-001", SlotDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "11:00", Status: entity.SlotStatusOpen, Doctor: doctor},
	}
}

func newSessionFixture(t *testing.T, patients *fakePatients) *sessionFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	bookings := &fakeBookings{
		doctors: []entity.Doctor{{DoctorID: "DOC-001", DoctorName: "Dr. Lee", Specialty: "Dentist"}},
		slots:   dentistSlots(),
	}
	weather := &fakeWeather{report: &service.WeatherReport{Description: "clear sky", TempCelsius: 28}}
	audit := &fakeAudit{}

	log := logrus.New()
	uc := NewSessionUsecase(
		log,
		service.NewSessionStore(client, 30*time.Minute),
		service.NewSpecialtyResolver(),
		weather,
		service.NewReceiptService(),
		audit,
		patients,
		bookings,
		decimal.NewFromInt(20),
	)

	return &sessionFixture{uc: uc, patients: patients, bookings: bookings, weather: weather, audit: audit}
}

func dispatch(t *testing.T, f *sessionFixture, id string, ev *dto.SessionEventRequest) *dto.SessionView {
	t.Helper()
	view, err := f.uc.Dispatch(context.Background(), id, ev)
	require.NoError(t, err)
	return view
}

// walkToIdentity drives a fresh session up to the identity question.
func walkToIdentity(t *testing.T, f *sessionFixture) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.uc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StateChooseMode), view.State)
	id := view.SessionID

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectMode, Mode: entity.ModeChat})
	assert.Equal(t, string(entity.StateChooseLanguage), view.State)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectLanguage, Language: "English"})
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventContinue})
	assert.Equal(t, string(entity.StateGreeting), view.State)
	assert.Equal(t, "Hi, how are you doing today?", view.Prompt)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventContinue})
	assert.Equal(t, string(entity.StateAskIdentity), view.State)

	return id
}

func walkToPayment(t *testing.T, f *sessionFixture, patient *entity.Patient) string {
	t.Helper()
	id := walkToIdentity(t, f)
	returning := true

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventIdentity, Returning: &returning})
	assert.Equal(t, string(entity.StateGetReturningInfo), view.State)

	view = dispatch(t, f, id, &dto.SessionEventRequest{
		Type: dto.EventReturningInfo, Name: patient.FullName(), PatientID: patient.PatientID,
	})
	assert.Equal(t, string(entity.StateMainMenu), view.State)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventMenuSelect, Choice: dto.MenuBookAppointment})
	assert.Equal(t, string(entity.StateAskSymptom), view.State)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSymptom, Symptom: "toothache"})
	assert.Equal(t, string(entity.StateSelectDoctor), view.State)
	require.NotEmpty(t, view.Slots)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectSlot, SlotID: 2})
	assert.Equal(t, string(entity.StateWeatherCheck), view.State)
	require.NotNil(t, view.Risk)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventContinue})
	assert.Equal(t, string(entity.StatePayment), view.State)

	return id
}

func TestSessionHappyPathNewPatient(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())
	id := walkToIdentity(t, f)
	returning := false

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventIdentity, Returning: &returning})
	assert.Equal(t, string(entity.StateGetNewInfo), view.State)

	view = dispatch(t, f, id, &dto.SessionEventRequest{
		Type:         dto.EventNewInfo,
		Registration: &dto.RegisterPatientRequest{FirstName: "Jane", LastName: "Doe", TravelingFrom: "Pune"},
	})
	assert.Equal(t, string(entity.StateMainMenu), view.State)
	assert.Contains(t, view.Warning, "AVP-4000")

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventMenuSelect, Choice: dto.MenuBookAppointment})
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSymptom, Symptom: "toothache"})
	assert.Equal(t, string(entity.StateSelectDoctor), view.State)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectSlot, SlotID: 2})
	assert.Equal(t, string(entity.StateWeatherCheck), view.State)
	require.NotNil(t, view.Risk)
	assert.Equal(t, service.RiskLabelLow, view.Risk.Label)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventContinue})
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventPay, PaymentMode: "UPI", Paid: true})
	assert.Equal(t, string(entity.StateConfirmed), view.State)
	require.NotNil(t, view.Booking)
	assert.Equal(t, "Dr. Lee", view.Booking.DoctorName)
	assert.Equal(t, "11:00", view.Booking.SlotTime)
	assert.Contains(t, f.audit.actions, entity.AuditActionBookingCreate)

	pdf, err := f.uc.Receipt(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventDone})
	assert.Equal(t, string(entity.StateEnded), view.State)
}

func TestSessionBackFromLanguage(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())

	view, err := f.uc.Start(context.Background())
	require.NoError(t, err)
	id := view.SessionID

	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectMode, Mode: entity.ModeVoice})
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventBack})
	assert.Equal(t, string(entity.StateChooseMode), view.State)
}

func TestSessionInvalidEventKeepsState(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())

	view, err := f.uc.Start(context.Background())
	require.NoError(t, err)
	id := view.SessionID

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventPay, PaymentMode: "UPI", Paid: true})
	assert.Equal(t, string(entity.StateChooseMode), view.State)
	assert.NotEmpty(t, view.Warning)
}

func TestSessionReturningPatientNotFound(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())
	id := walkToIdentity(t, f)
	returning := true

	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventIdentity, Returning: &returning})
	view := dispatch(t, f, id, &dto.SessionEventRequest{
		Type: dto.EventReturningInfo, Name: "Jane Doe", PatientID: "AVP-9999",
	})
	assert.Equal(t, string(entity.StateGetReturningInfo), view.State)
	assert.Contains(t, view.Warning, "not found")
}

func TestSessionUnmappedSymptomReprompts(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())
	id := walkToIdentity(t, f)
	returning := false

	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventIdentity, Returning: &returning})
	dispatch(t, f, id, &dto.SessionEventRequest{
		Type:         dto.EventNewInfo,
		Registration: &dto.RegisterPatientRequest{FirstName: "Jane", LastName: "Doe"},
	})
	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventMenuSelect, Choice: dto.MenuBookAppointment})

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSymptom, Symptom: "hiccups"})
	assert.Equal(t, string(entity.StateAskSymptom), view.State)
	assert.NotEmpty(t, view.Warning)

	// A recognised symptom still works afterwards.
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSymptom, Symptom: "toothache"})
	assert.Equal(t, string(entity.StateSelectDoctor), view.State)
}

func TestSessionPaymentRequiresAck(t *testing.T) {
	patient := &entity.Patient{PatientID: "AVP-4005", FirstName: "Jane", LastName: "Doe"}
	f := newSessionFixture(t, newFakePatients(patient))
	id := walkToPayment(t, f, patient)

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventPay, PaymentMode: "UPI"})
	assert.Equal(t, string(entity.StatePayment), view.State)
	assert.NotEmpty(t, view.Warning)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventPay, Paid: true})
	assert.Equal(t, string(entity.StatePayment), view.State)
	assert.NotEmpty(t, view.Warning)
}

func TestSessionSlotConflictReturnsToSelection(t *testing.T) {
	patient := &entity.Patient{PatientID: "AVP-4005", FirstName: "Jane", LastName: "Doe"}
	f := newSessionFixture(t, newFakePatients(patient))
	id := walkToPayment(t, f, patient)

	// The slot is stolen between selection and payment.
	f.bookings.fillErrs = []error{ErrSlotAlreadyFilled}

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventPay, PaymentMode: "Card", Paid: true})
	assert.Equal(t, string(entity.StateSelectDoctor), view.State)
	assert.Contains(t, view.Warning, "booked by another patient")
	assert.NotEmpty(t, view.Slots)

	// Picking a fresh slot completes the booking.
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectSlot, SlotID: 1})
	assert.Equal(t, string(entity.StateWeatherCheck), view.State)
	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventContinue})
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventPay, PaymentMode: "Card", Paid: true})
	assert.Equal(t, string(entity.StateConfirmed), view.State)
}

func TestSessionRescheduleWithTravelVoucher(t *testing.T) {
	patient := &entity.Patient{
		PatientID:               "AVP-4005",
		FirstName:               "Jane",
		LastName:                "Doe",
		MissedAppointments:      1,
		MissedAppointmentReason: "No transportation",
	}
	f := newSessionFixture(t, newFakePatients(patient))
	f.bookings.reschedule = dentistSlots()[:1]
	id := walkToPayment(t, f, patient)

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventPay, PaymentMode: "Cash", Paid: true})
	assert.Equal(t, string(entity.StateConfirmed), view.State)
	assert.True(t, view.TravelVoucher)
	require.NotEmpty(t, view.RescheduleOptions)

	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventReschedule, SlotID: 1})
	assert.Equal(t, string(entity.StateConfirmed), view.State)
	assert.Equal(t, "09:00", view.Booking.SlotTime)
	assert.Contains(t, f.audit.actions, entity.AuditActionBookingReschedule)

	pdf, err := f.uc.Receipt(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestSessionRiskAdvisoryHighOnBadSignals(t *testing.T) {
	patient := &entity.Patient{
		PatientID:          "AVP-4005",
		FirstName:          "Jane",
		LastName:           "Doe",
		MissedAppointments: 2,
		RiskCategory:       entity.RiskCategoryHigh,
	}
	f := newSessionFixture(t, newFakePatients(patient))
	f.weather.report = &service.WeatherReport{Description: "light rain", TempCelsius: 22}

	id := walkToIdentity(t, f)
	returning := true
	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventIdentity, Returning: &returning})
	view := dispatch(t, f, id, &dto.SessionEventRequest{
		Type: dto.EventReturningInfo, Name: "Jane Doe", PatientID: patient.PatientID,
	})
	assert.Contains(t, view.Warning, "missed appointment")

	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventMenuSelect, Choice: dto.MenuBookAppointment})
	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSymptom, Symptom: "toothache"})

	// The 09:00 slot adds the early-morning point: 2+2+2+1 = 7.
	view = dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectSlot, SlotID: 1})
	require.NotNil(t, view.Risk)
	assert.Equal(t, service.RiskLabelHigh, view.Risk.Label)
	assert.Equal(t, 7, view.Risk.Score)
}

func TestSessionWeatherOutageDegrades(t *testing.T) {
	patient := &entity.Patient{PatientID: "AVP-4005", FirstName: "Jane", LastName: "Doe"}
	f := newSessionFixture(t, newFakePatients(patient))
	f.weather.err = errors.New("upstream down")

	id := walkToIdentity(t, f)
	returning := true
	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventIdentity, Returning: &returning})
	dispatch(t, f, id, &dto.SessionEventRequest{
		Type: dto.EventReturningInfo, Name: "Jane Doe", PatientID: patient.PatientID,
	})
	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventMenuSelect, Choice: dto.MenuBookAppointment})
	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSymptom, Symptom: "toothache"})

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventSelectSlot, SlotID: 2})
	assert.Equal(t, string(entity.StateWeatherCheck), view.State)
	assert.NotEmpty(t, view.Warning)
	require.NotNil(t, view.Risk)
	assert.True(t, view.Risk.WeatherUnavailable)
	// Risk still computed from the remaining signals.
	assert.Equal(t, service.RiskLabelLow, view.Risk.Label)
}

func TestSessionReceiptBeforeConfirmation(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())

	view, err := f.uc.Start(context.Background())
	require.NoError(t, err)

	_, err = f.uc.Receipt(context.Background(), view.SessionID)
	assert.ErrorIs(t, err, ErrReceiptNotReady)
}

func TestSessionExitFromMenu(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())
	id := walkToIdentity(t, f)
	returning := false

	dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventIdentity, Returning: &returning})
	dispatch(t, f, id, &dto.SessionEventRequest{
		Type:         dto.EventNewInfo,
		Registration: &dto.RegisterPatientRequest{FirstName: "Jane", LastName: "Doe"},
	})

	view := dispatch(t, f, id, &dto.SessionEventRequest{Type: dto.EventMenuSelect, Choice: dto.MenuExit})
	assert.Equal(t, string(entity.StateEnded), view.State)
}

func TestSessionUnknownID(t *testing.T) {
	f := newSessionFixture(t, newFakePatients())

	_, err := f.uc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}
