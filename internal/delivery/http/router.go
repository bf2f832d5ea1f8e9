package http

import (
	"net/http"

	"ava-assistant/internal/delivery/http/handler"
	"ava-assistant/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	sessionHandler    *handler.SessionHandler
	patientHandler    *handler.PatientHandler
	doctorHandler     *handler.DoctorHandler
	auditLogHandler   *handler.AuditLogHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		sessionHandler:    sessionHandler,
		patientHandler:    patientHandler,
		doctorHandler:     doctorHandler,
		auditLogHandler:   auditLogHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Booking sessions (the conversational wizard)
	api.HandleFunc("/sessions", r.sessionHandler.StartSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", r.sessionHandler.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/events", r.sessionHandler.DispatchEvent).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/receipt", r.sessionHandler.DownloadReceipt).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/audit", r.auditLogHandler.GetSessionAuditTrail).Methods(http.MethodGet)

	// Patient directory
	api.HandleFunc("/patients", r.patientHandler.RegisterPatient).Methods(http.MethodPost)
	api.HandleFunc("/patients/verify", r.patientHandler.VerifyPatient).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)

	// Reference data
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/slots", r.doctorHandler.GetDoctorSlots).Methods(http.MethodGet)
	api.HandleFunc("/specialties/resolve", r.doctorHandler.ResolveSpecialty).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
