package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ava-assistant/internal/converter"
	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/domain/entity"
	"ava-assistant/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrReceiptNotReady = errors.New("no confirmed booking to print")
)

// paymentModes offered in the payment step.
var paymentModes = []string{"UPI", "Card", "Cash"}

// SessionUsecase drives the booking wizard. Every interaction is one
// synchronous Dispatch: load the session, apply (state, event), save, and
// return the view the client renders. Recoverable failures re-display the
// current state with an inline warning; only infrastructure errors
// propagate.
type SessionUsecase interface {
	Start(ctx context.Context) (*dto.SessionView, error)
	Get(ctx context.Context, id string) (*dto.SessionView, error)
	Dispatch(ctx context.Context, id string, ev *dto.SessionEventRequest) (*dto.SessionView, error)
	Receipt(ctx context.Context, id string) ([]byte, error)
}

type sessionUsecase struct {
	log      *logrus.Logger
	store    *service.SessionStore
	resolver *service.SpecialtyResolver
	weather  service.WeatherService
	receipts *service.ReceiptService
	audit    service.AuditService
	patients PatientUsecase
	bookings BookingUsecase
	tokenFee decimal.Decimal
}

func NewSessionUsecase(
	log *logrus.Logger,
	store *service.SessionStore,
	resolver *service.SpecialtyResolver,
	weather service.WeatherService,
	receipts *service.ReceiptService,
	audit service.AuditService,
	patients PatientUsecase,
	bookings BookingUsecase,
	tokenFee decimal.Decimal,
) SessionUsecase {
	return &sessionUsecase{
		log:      log,
		store:    store,
		resolver: resolver,
		weather:  weather,
		receipts: receipts,
		audit:    audit,
		patients: patients,
		bookings: bookings,
		tokenFee: tokenFee,
	}
}

func (u *sessionUsecase) Start(ctx context.Context) (*dto.SessionView, error) {
	now := time.Now().UTC()
	session := &entity.BookingSession{
		ID:        uuid.NewString(),
		State:     entity.StateChooseMode,
		TokenFee:  u.tokenFee,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.store.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save new session: %+v", err)
		return nil, err
	}

	u.log.Infof("Session started: id=%s", session.ID)
	return u.buildView(ctx, session, "")
}

func (u *sessionUsecase) Get(ctx context.Context, id string) (*dto.SessionView, error) {
	session, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.buildView(ctx, session, "")
}

func (u *sessionUsecase) Dispatch(ctx context.Context, id string, ev *dto.SessionEventRequest) (*dto.SessionView, error) {
	session, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	warning, err := u.applyEvent(ctx, session, ev)
	if err != nil {
		return nil, err
	}

	if err := u.store.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save session %s: %+v", id, err)
		return nil, err
	}

	return u.buildView(ctx, session, warning)
}

func (u *sessionUsecase) Receipt(ctx context.Context, id string) ([]byte, error) {
	session, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.HasBookedSlot() || session.ConfirmedAt == nil {
		return nil, ErrReceiptNotReady
	}

	return u.receipts.Generate(service.ReceiptData{
		PatientName:   session.PatientName,
		PatientID:     session.PatientID,
		DoctorName:    session.DoctorName,
		Specialty:     session.Specialty,
		SlotDate:      session.SlotDate,
		SlotTime:      session.SlotTime,
		PaymentMode:   session.PaymentMode,
		TokenFee:      session.TokenFee,
		IssuedAt:      *session.ConfirmedAt,
		TravelVoucher: session.TravelVoucher,
	})
}

// applyEvent is the single dispatch function of the state machine. It
// mutates the session and returns an inline warning for recoverable
// failures; the caller persists the session either way.
func (u *sessionUsecase) applyEvent(ctx context.Context, s *entity.BookingSession, ev *dto.SessionEventRequest) (string, error) {
	switch s.State {
	case entity.StateChooseMode:
		return u.onChooseMode(s, ev), nil

	case entity.StateChooseLanguage:
		return u.onChooseLanguage(s, ev), nil

	case entity.StateGreeting:
		if ev.Type == dto.EventContinue {
			s.State = entity.StateAskIdentity
			return "", nil
		}
		return invalidEventWarning(ev), nil

	case entity.StateAskIdentity:
		if ev.Type != dto.EventIdentity || ev.Returning == nil {
			return invalidEventWarning(ev), nil
		}
		// This branch is irreversible for the session.
		if *ev.Returning {
			s.State = entity.StateGetReturningInfo
		} else {
			s.State = entity.StateGetNewInfo
		}
		return "", nil

	case entity.StateGetReturningInfo:
		return u.onReturningInfo(ctx, s, ev)

	case entity.StateGetNewInfo:
		return u.onNewInfo(ctx, s, ev)

	case entity.StateMainMenu:
		return u.onMainMenu(s, ev), nil

	case entity.StateAskSymptom:
		return u.onSymptom(ctx, s, ev)

	case entity.StateSelectDoctor:
		return u.onSelectSlot(ctx, s, ev)

	case entity.StateWeatherCheck:
		// Advisory only: the only way forward is an explicit continue.
		if ev.Type == dto.EventContinue {
			s.State = entity.StatePayment
			return "", nil
		}
		return invalidEventWarning(ev), nil

	case entity.StatePayment:
		return u.onPay(ctx, s, ev)

	case entity.StateConfirmed:
		return u.onConfirmed(ctx, s, ev)

	case entity.StateEnded:
		return "This session has ended. Start a new one to book again.", nil
	}

	return "", fmt.Errorf("unknown session state %q", s.State)
}

func (u *sessionUsecase) onChooseMode(s *entity.BookingSession, ev *dto.SessionEventRequest) string {
	if ev.Type != dto.EventSelectMode {
		return invalidEventWarning(ev)
	}
	if !entity.ValidMode(ev.Mode) {
		return "Please choose chat, voice or ivr to continue."
	}
	s.Mode = ev.Mode
	s.State = entity.StateChooseLanguage
	return ""
}

func (u *sessionUsecase) onChooseLanguage(s *entity.BookingSession, ev *dto.SessionEventRequest) string {
	switch ev.Type {
	case dto.EventBack:
		// Always available; discards nothing.
		s.State = entity.StateChooseMode
		return ""
	case dto.EventSelectLanguage:
		if !entity.ValidLanguage(ev.Language) {
			return "Available languages: English, Hindi, Spanish."
		}
		s.Language = ev.Language
		return ""
	case dto.EventContinue:
		if s.Language == "" {
			return "Select a language before continuing."
		}
		s.State = entity.StateGreeting
		return ""
	}
	return invalidEventWarning(ev)
}

func (u *sessionUsecase) onReturningInfo(ctx context.Context, s *entity.BookingSession, ev *dto.SessionEventRequest) (string, error) {
	if ev.Type != dto.EventReturningInfo {
		return invalidEventWarning(ev), nil
	}
	if strings.TrimSpace(ev.Name) == "" || strings.TrimSpace(ev.PatientID) == "" {
		return "Name and Patient ID are both required.", nil
	}

	patient, err := u.patients.Verify(ctx, ev.Name, ev.PatientID)
	switch {
	case errors.Is(err, ErrPatientIDNotFound):
		return fmt.Sprintf("Patient ID %s was not found. Please check and try again.", ev.PatientID), nil
	case errors.Is(err, ErrNameMismatch):
		return "That name does not match our record for this Patient ID.", nil
	case err != nil:
		return "", err
	}

	s.PatientID = patient.PatientID
	s.PatientName = patient.FullName()
	if patient.TravelingFrom != "" {
		s.WeatherCity = patient.TravelingFrom
	}
	s.State = entity.StateMainMenu

	// Missed-appointment history produces an advisory, never a block.
	if patient.HasMissedHistory() {
		return fmt.Sprintf("Welcome back, %s. You have %d missed appointment(s) on record - please try to attend this one.",
			patient.FirstName, patient.MissedAppointments), nil
	}
	return "", nil
}

func (u *sessionUsecase) onNewInfo(ctx context.Context, s *entity.BookingSession, ev *dto.SessionEventRequest) (string, error) {
	if ev.Type != dto.EventNewInfo || ev.Registration == nil {
		return invalidEventWarning(ev), nil
	}

	reg := ev.Registration
	// An empty required field simply leaves the form displayed.
	if strings.TrimSpace(reg.FirstName) == "" || strings.TrimSpace(reg.LastName) == "" {
		return "First and last name are required to register.", nil
	}

	patient, err := u.patients.Register(ctx, reg)
	if errors.Is(err, ErrInvalidBirthDate) {
		return "Date of birth must be in YYYY-MM-DD format.", nil
	}
	if err != nil {
		return "", err
	}

	s.PatientID = patient.PatientID
	s.PatientName = patient.FullName()
	s.NewPatient = true
	if reg.TravelingFrom != "" {
		s.WeatherCity = reg.TravelingFrom
	}
	s.State = entity.StateMainMenu
	return fmt.Sprintf("You're registered! Your Patient ID is %s - keep it for future visits.", patient.PatientID), nil
}

func (u *sessionUsecase) onMainMenu(s *entity.BookingSession, ev *dto.SessionEventRequest) string {
	if ev.Type != dto.EventMenuSelect {
		return invalidEventWarning(ev)
	}
	switch ev.Choice {
	case dto.MenuBookAppointment:
		s.State = entity.StateAskSymptom
		return ""
	case dto.MenuExit:
		s.State = entity.StateEnded
		return ""
	}
	return "Choose an option from the menu."
}

func (u *sessionUsecase) onSymptom(ctx context.Context, s *entity.BookingSession, ev *dto.SessionEventRequest) (string, error) {
	if ev.Type != dto.EventSymptom {
		return invalidEventWarning(ev), nil
	}
	if strings.TrimSpace(ev.Symptom) == "" {
		return "Tell me your main symptom so I can match a specialist.", nil
	}

	specialty, err := u.resolver.Resolve(ev.Symptom)
	if err != nil {
		return `I don't recognise that symptom yet. Try something like "fever", "toothache" or "back pain".`, nil
	}
	s.Specialty = specialty

	// Check availability before advancing so the patient is not sent to an
	// empty selection screen.
	_, err = u.bookings.OpenSlotsBySpecialty(ctx, specialty)
	switch {
	case errors.Is(err, ErrNoProviderForSpecialty):
		s.State = entity.StateMainMenu
		return fmt.Sprintf("No doctor currently practices %s. Returning you to the menu.", specialty), nil
	case errors.Is(err, ErrNoSlotsAvailable):
		s.State = entity.StateMainMenu
		return fmt.Sprintf("All %s slots are currently booked. Returning you to the menu.", specialty), nil
	case err != nil:
		return "", err
	}

	s.State = entity.StateSelectDoctor
	return "", nil
}

func (u *sessionUsecase) onSelectSlot(ctx context.Context, s *entity.BookingSession, ev *dto.SessionEventRequest) (string, error) {
	switch ev.Type {
	case dto.EventBack:
		s.State = entity.StateMainMenu
		return "", nil
	case dto.EventSelectSlot:
	default:
		return invalidEventWarning(ev), nil
	}

	if ev.SlotID == 0 {
		return "Pick one of the listed slots.", nil
	}

	slot, err := u.bookings.GetSlot(ctx, ev.SlotID)
	if errors.Is(err, ErrSlotNotFound) {
		return "That slot is no longer listed. Pick another one.", nil
	}
	if err != nil {
		return "", err
	}
	if !slot.IsOpen() {
		return "That slot was just taken. Pick another one.", nil
	}
	if slot.Doctor.Specialty != s.Specialty {
		return "Pick a slot from the doctors listed for your symptom.", nil
	}

	s.DoctorID = slot.DoctorID
	s.DoctorName = slot.Doctor.DoctorName
	s.SlotID = slot.ID
	s.SlotDate = slot.SlotDate.Format("2006-01-02")
	s.SlotTime = slot.StartTime
	s.State = entity.StateWeatherCheck

	return u.runWeatherCheck(ctx, s, slot.StartHour()), nil
}

// runWeatherCheck fetches the travel-weather signal and computes the
// no-show advisory. A failed fetch degrades to a warning and an empty
// weather contribution; it never blocks the flow.
func (u *sessionUsecase) runWeatherCheck(ctx context.Context, s *entity.BookingSession, slotHour int) string {
	warning := ""
	description := ""

	report, err := u.weather.CurrentByCity(ctx, s.WeatherCity)
	if err != nil {
		u.log.Warnf("Weather check failed for session %s: %+v", s.ID, err)
		warning = "Weather service is unavailable right now; skipping the travel advisory."
		s.WeatherDescription = ""
		s.WeatherTemp = 0
	} else {
		s.WeatherCity = report.City
		s.WeatherDescription = report.Description
		s.WeatherTemp = report.TempCelsius
		description = report.Description
	}

	missed, category := 0, ""
	if patient, err := u.patients.FindByID(ctx, s.PatientID); err == nil {
		missed = patient.MissedAppointments
		category = string(patient.RiskCategory)
	}

	label, score := service.ClassifyNoShowRisk(service.RiskInput{
		MissedAppointments: missed,
		RiskCategory:       category,
		WeatherDescription: description,
		SlotHour:           slotHour,
	})
	s.RiskLabel = label
	s.RiskScore = score

	return warning
}

func (u *sessionUsecase) onPay(ctx context.Context, s *entity.BookingSession, ev *dto.SessionEventRequest) (string, error) {
	if ev.Type != dto.EventPay {
		return invalidEventWarning(ev), nil
	}
	if ev.PaymentMode == "" {
		return "Select a payment mode (UPI, Card or Cash).", nil
	}
	if !ev.Paid {
		return "Confirm the token payment to book your slot.", nil
	}

	err := u.bookings.FillSlot(ctx, s.DoctorID, s.SlotDate, s.SlotTime)
	switch {
	case errors.Is(err, ErrSlotAlreadyFilled), errors.Is(err, ErrSlotNotFound):
		s.SlotID = 0
		s.SlotDate = ""
		s.SlotTime = ""
		s.State = entity.StateSelectDoctor
		return "That slot was booked by another patient while you were paying. Please pick a different one.", nil
	case err != nil:
		return "", err
	}

	now := time.Now().UTC()
	s.PaymentMode = ev.PaymentMode
	s.Paid = true
	s.ConfirmedAt = &now
	s.State = entity.StateConfirmed

	u.recordAudit(ctx, s, entity.AuditActionBookingCreate)
	u.log.Infof("Booking confirmed: session=%s, patient=%s, doctor=%s, slot=%s %s",
		s.ID, s.PatientID, s.DoctorID, s.SlotDate, s.SlotTime)

	// Re-derive history to decide whether to offer the reschedule loop.
	if patient, err := u.patients.FindByID(ctx, s.PatientID); err == nil && patient.HasMissedHistory() {
		s.RescheduleOffered = true
		s.TravelVoucher = patient.MissedForTransport()
	}

	return "", nil
}

func (u *sessionUsecase) onConfirmed(ctx context.Context, s *entity.BookingSession, ev *dto.SessionEventRequest) (string, error) {
	switch ev.Type {
	case dto.EventDone:
		s.State = entity.StateEnded
		return "", nil
	case dto.EventReschedule:
	default:
		return invalidEventWarning(ev), nil
	}

	if !s.RescheduleOffered {
		return "Rescheduling is not offered for this booking.", nil
	}
	if ev.SlotID == 0 || ev.SlotID == s.SlotID {
		return "Pick one of the offered slots.", nil
	}

	slot, err := u.bookings.GetSlot(ctx, ev.SlotID)
	if errors.Is(err, ErrSlotNotFound) {
		return "That slot is no longer available. Pick another one.", nil
	}
	if err != nil {
		return "", err
	}
	if slot.DoctorID != s.DoctorID {
		return "Reschedule slots must be with the same doctor.", nil
	}

	err = u.bookings.FillSlot(ctx, slot.DoctorID, slot.SlotDate.Format("2006-01-02"), slot.StartTime)
	switch {
	case errors.Is(err, ErrSlotAlreadyFilled), errors.Is(err, ErrSlotNotFound):
		return "That slot was just taken. Pick another one.", nil
	case err != nil:
		return "", err
	}

	// The previous slot stays Filled: it is forfeited, not reopened.
	s.SlotID = slot.ID
	s.SlotDate = slot.SlotDate.Format("2006-01-02")
	s.SlotTime = slot.StartTime
	s.Rescheduled = true

	u.recordAudit(ctx, s, entity.AuditActionBookingReschedule)
	u.log.Infof("Booking rescheduled: session=%s, patient=%s, slot=%s %s",
		s.ID, s.PatientID, s.SlotDate, s.SlotTime)

	return "", nil
}

func (u *sessionUsecase) recordAudit(ctx context.Context, s *entity.BookingSession, action string) {
	var sessionID *uuid.UUID
	if parsed, err := uuid.Parse(s.ID); err == nil {
		sessionID = &parsed
	}
	u.audit.Record(ctx, sessionID, s.PatientID, action, entity.JSON{
		"doctor_id":    s.DoctorID,
		"slot_date":    s.SlotDate,
		"slot_time":    s.SlotTime,
		"payment_mode": s.PaymentMode,
	})
}

// buildView assembles what the client renders for the session's current
// state. List payloads are re-queried on every build so a refreshed view
// always shows live availability.
func (u *sessionUsecase) buildView(ctx context.Context, s *entity.BookingSession, warning string) (*dto.SessionView, error) {
	view := &dto.SessionView{
		SessionID: s.ID,
		State:     string(s.State),
		Mode:      s.Mode,
		Language:  s.Language,
		Warning:   warning,
	}

	switch s.State {
	case entity.StateChooseMode:
		view.Prompt = "How would you like to talk to me?"
		view.Options = []string{entity.ModeChat, entity.ModeVoice, entity.ModeIVR}

	case entity.StateChooseLanguage:
		view.Prompt = "Select your preferred language."
		view.Options = entity.SupportedLanguages

	case entity.StateGreeting:
		greeting, ok := entity.Greetings[s.Language]
		if !ok {
			greeting = entity.Greetings["English"]
		}
		view.Prompt = greeting

	case entity.StateAskIdentity:
		view.Prompt = "Have you visited us before?"
		view.Options = []string{"yes", "no"}

	case entity.StateGetReturningInfo:
		view.Prompt = "Please share your name and Patient ID."

	case entity.StateGetNewInfo:
		view.Prompt = "Let's get you registered. Please fill in your details."

	case entity.StateMainMenu:
		view.Prompt = "What would you like to do?"
		view.Options = []string{dto.MenuBookAppointment, dto.MenuExit}
		u.attachPatient(ctx, s, view)

	case entity.StateAskSymptom:
		view.Prompt = `Describe your main symptom (for example: "fever", "toothache", "back pain").`

	case entity.StateSelectDoctor:
		view.Prompt = fmt.Sprintf("Here are the available %s slots. Pick one.", s.Specialty)
		if err := u.attachAvailability(ctx, s, view); err != nil {
			return nil, err
		}

	case entity.StateWeatherCheck:
		view.Prompt = "Before you pay, here is your travel advisory."
		view.Risk = &dto.RiskAdvisory{
			Label:              s.RiskLabel,
			Score:              s.RiskScore,
			WeatherCity:        s.WeatherCity,
			WeatherDescription: s.WeatherDescription,
			TempCelsius:        s.WeatherTemp,
			WeatherUnavailable: s.WeatherDescription == "",
		}

	case entity.StatePayment:
		view.Prompt = fmt.Sprintf("A token payment of %s confirms your intent to attend. Select a payment mode and confirm.",
			s.TokenFee.StringFixed(2))
		view.Options = paymentModes

	case entity.StateConfirmed:
		view.Prompt = "Your appointment is confirmed!"
		view.Booking = bookingSummary(s)
		view.TravelVoucher = s.TravelVoucher
		if s.RescheduleOffered {
			options, err := u.bookings.RescheduleOptions(ctx, s.DoctorID)
			if err != nil {
				u.log.Warnf("Failed to load reschedule options for session %s: %+v", s.ID, err)
			} else {
				view.RescheduleOptions = converter.SlotsToResponses(options)
			}
		}

	case entity.StateEnded:
		view.Prompt = "Thank you for using AVA. Take care!"
		if s.Paid {
			view.Booking = bookingSummary(s)
		}
	}

	return view, nil
}

// attachPatient adds the patient card to menu views; a failed lookup only
// drops the card.
func (u *sessionUsecase) attachPatient(ctx context.Context, s *entity.BookingSession, view *dto.SessionView) {
	if s.PatientID == "" {
		return
	}
	patient, err := u.patients.FindByID(ctx, s.PatientID)
	if err != nil {
		return
	}
	view.Patient = converter.PatientToResponse(patient)
}

// attachAvailability refreshes the doctor and slot lists for the selection
// screen. Availability may have changed since the transition check, so the
// empty cases surface as warnings here too.
func (u *sessionUsecase) attachAvailability(ctx context.Context, s *entity.BookingSession, view *dto.SessionView) error {
	doctors, err := u.bookings.DoctorsBySpecialty(ctx, s.Specialty)
	switch {
	case errors.Is(err, ErrNoProviderForSpecialty):
		appendWarning(view, fmt.Sprintf("No doctor currently practices %s.", s.Specialty))
		return nil
	case err != nil:
		return err
	}
	view.Doctors = converter.DoctorsToResponses(doctors)

	slots, err := u.bookings.OpenSlotsBySpecialty(ctx, s.Specialty)
	switch {
	case errors.Is(err, ErrNoSlotsAvailable):
		appendWarning(view, fmt.Sprintf("All %s slots are currently booked.", s.Specialty))
		return nil
	case err != nil:
		return err
	}
	view.Slots = converter.SlotsToResponses(slots)
	return nil
}

func bookingSummary(s *entity.BookingSession) *dto.BookingSummary {
	summary := &dto.BookingSummary{
		PatientID:   s.PatientID,
		PatientName: s.PatientName,
		DoctorID:    s.DoctorID,
		DoctorName:  s.DoctorName,
		Specialty:   s.Specialty,
		SlotDate:    s.SlotDate,
		SlotTime:    s.SlotTime,
		PaymentMode: s.PaymentMode,
		TokenFee:    s.TokenFee,
	}
	if s.ConfirmedAt != nil {
		summary.ConfirmedAt = s.ConfirmedAt.Format(time.RFC3339)
	}
	return summary
}

func invalidEventWarning(ev *dto.SessionEventRequest) string {
	return fmt.Sprintf("That action (%s) isn't available right now.", ev.Type)
}

func appendWarning(view *dto.SessionView, msg string) {
	if view.Warning == "" {
		view.Warning = msg
		return
	}
	view.Warning += " " + msg
}
