package handler

import (
	"net/http"

	"ava-assistant/internal/usecase"
	"ava-assistant/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetSessionAuditTrail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	trail, err := h.auditLogUsecase.GetSessionAuditTrail(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case usecase.ErrInvalidSessionID:
			response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		default:
			response.InternalServerError(w, "Failed to get audit trail")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit trail retrieved successfully", trail)
}
