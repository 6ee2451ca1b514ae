package start_reschedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines/models"
	startReschedule "github.com/m04kA/SMC-SalonBooking/internal/usecase/start_reschedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "клиент, пакет и запись обязательны"
	msgDraftNotFound      = "черновик записи не найден"
	msgPackageNotFound    = "активный пакет клиента не найден"
	msgSessionNotFound    = "сессия не найдена в истории пакета"
	msgSessionConcluded   = "сессия уже состоялась и не может быть перенесена"
)

type Handler struct {
	useCase StartRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase StartRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/reschedule
// Все строки черновика заменяются одной строкой переноса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req StartRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(draftID))
	if err != nil {
		switch {
		case errors.Is(err, startReschedule.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, startReschedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, startReschedule.ErrPackageNotFound):
			h.logger.Warn("POST /drafts/{id}/reschedule - Package not found: package_id=%s", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, startReschedule.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, startReschedule.ErrSessionConcluded):
			handlers.RespondUnprocessable(w, msgSessionConcluded)

		default:
			h.logger.Error("POST /drafts/{id}/reschedule - Failed: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromState(result.State))
}
