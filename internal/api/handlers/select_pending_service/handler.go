package select_pending_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines/models"
	selectPending "github.com/m04kA/SMC-SalonBooking/internal/usecase/select_pending_service"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "клиент и долг по услуге обязательны"
	msgDraftNotFound      = "черновик записи не найден"
	msgPendingNotFound    = "открытый долг по услуге не найден"
)

type Handler struct {
	useCase SelectPendingServiceUseCase
	logger  Logger
}

func NewHandler(useCase SelectPendingServiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req SelectPendingServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/pending - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &selectPending.Request{
		DraftID:          draftID,
		ClientID:         req.ClientID,
		PendingServiceID: req.PendingServiceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, selectPending.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, selectPending.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, selectPending.ErrPendingNotFound):
			h.logger.Warn("POST /drafts/{id}/pending - Pending service not found: pending_service_id=%s", req.PendingServiceID)
			handlers.RespondNotFound(w, msgPendingNotFound)

		default:
			h.logger.Error("POST /drafts/{id}/pending - Failed: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromState(result.State))
}
