package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidLineIndex = "некорректный индекс строки"
	msgDraftNotFound    = "черновик записи не найден"
	msgLineNotFound     = "строка не найдена"
	msgLineIncomplete   = "в строке не выбраны сотрудник или дата"
	msgEmployeeNotFound = "сотрудник не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidDate      = "некорректная дата записи"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/drafts/{draftId}/lines/{index}/slots
// Слоты сотрудника строки на ее дату с числом пересечений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	draftID := vars["draftId"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 0 {
		h.logger.Warn("GET /drafts/{id}/lines/{index}/slots - Invalid line index: %q", vars["index"])
		handlers.RespondBadRequest(w, msgInvalidLineIndex)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{DraftID: draftID, LineIndex: index})
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, getAvailableSlots.ErrLineNotFound):
			handlers.RespondNotFound(w, msgLineNotFound)

		case errors.Is(err, getAvailableSlots.ErrLineIncomplete):
			handlers.RespondUnprocessable(w, msgLineIncomplete)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /drafts/{id}/lines/{index}/slots - Employee not found: draft_id=%s, line=%d", draftID, index)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /drafts/{id}/lines/{index}/slots - Service not found: draft_id=%s, line=%d", draftID, index)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /drafts/{id}/lines/{index}/slots - Failed to get slots: draft_id=%s, line=%d, error=%v",
				draftID, index, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drafts/{id}/lines/{index}/slots - Slots retrieved: draft_id=%s, line=%d, employee_id=%s, slots_count=%d",
		draftID, index, result.EmployeeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
