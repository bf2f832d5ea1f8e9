package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ava-assistant/internal/delivery/dto"
	"ava-assistant/internal/service"
	"ava-assistant/internal/usecase"
	"ava-assistant/pkg/response"
	"ava-assistant/pkg/validator"

	"github.com/gorilla/mux"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionUsecase.Start(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to start session")
		return
	}

	response.Success(w, http.StatusCreated, "Session started", view)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	view, err := h.sessionUsecase.Get(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case service.ErrSessionNotFound:
			response.NotFound(w, "Session not found or expired")
		default:
			response.InternalServerError(w, "Failed to get session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", view)
}

func (h *SessionHandler) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.SessionEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	view, err := h.sessionUsecase.Dispatch(r.Context(), vars["id"], &req)
	if err != nil {
		switch err {
		case service.ErrSessionNotFound:
			response.NotFound(w, "Session not found or expired")
		default:
			response.InternalServerError(w, "Failed to process event")
		}
		return
	}

	response.Success(w, http.StatusOK, "Event processed", view)
}

func (h *SessionHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pdf, err := h.sessionUsecase.Receipt(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case service.ErrSessionNotFound:
			response.NotFound(w, "Session not found or expired")
		case usecase.ErrReceiptNotReady:
			response.Conflict(w, "No confirmed booking on this session yet")
		default:
			response.InternalServerError(w, "Failed to generate receipt")
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, vars["id"]))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
