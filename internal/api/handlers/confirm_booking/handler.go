package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	confirmBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_booking"
)

const (
	msgDraftNotFound       = "черновик записи не найден"
	msgFormInvalid         = "заполните все строки записи"
	msgBookingRejected     = "запись отклонена: проверьте сотрудника, услугу, дату и время"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgEntitlementConflict = "пакет или долг по услуге изменились, обновите данные"
	msgNotEntitled         = "пакет не покрывает выбранные услуги или сессии закончились"
	msgConfirmInProgress   = "подтверждение черновика уже выполняется"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/confirm
// Создает по записи на каждую строку черновика атомарно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{DraftID: draftID})
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, confirmBooking.ErrDraftNotFound):
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, confirmBooking.ErrFormInvalid):
			h.logger.Warn("POST /drafts/{id}/confirm - Form invalid: draft_id=%s", draftID)
			handlers.RespondUnprocessable(w, msgFormInvalid)

		case errors.Is(err, confirmBooking.ErrBookingRejected):
			h.logger.Warn("POST /drafts/{id}/confirm - Booking rejected: draft_id=%s, error=%v", draftID, err)
			handlers.RespondBadRequest(w, msgBookingRejected)

		case errors.Is(err, confirmBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /drafts/{id}/confirm - Slot not available: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, confirmBooking.ErrNotEntitled):
			h.logger.Warn("POST /drafts/{id}/confirm - Not entitled: draft_id=%s, error=%v", draftID, err)
			handlers.RespondUnprocessable(w, msgNotEntitled)

		case errors.Is(err, confirmBooking.ErrConfirmInProgress):
			h.logger.Warn("POST /drafts/{id}/confirm - Confirmation in progress: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgConfirmInProgress)

		case errors.Is(err, confirmBooking.ErrEntitlementConflict):
			h.logger.Warn("POST /drafts/{id}/confirm - Entitlement conflict: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgEntitlementConflict)

		default:
			h.logger.Error("POST /drafts/{id}/confirm - Failed to confirm draft: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/confirm - Booking confirmed: draft_id=%s, client_id=%s, appointments=%d",
		draftID, result.ClientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
