package get_company_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const msgInvalidParams = "ожидается дата в формате YYYY-MM-DD"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/appointments?date=YYYY-MM-DD
// Агенда сотрудника на день, включая отмененные записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID := mux.Vars(r)["employeeId"]
	date := r.URL.Query().Get("date")

	result, err := h.service.GetEmployeeAgenda(r.Context(), employeeID, date)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidRequest) {
			h.logger.Warn("GET /employees/{id}/appointments - Invalid params: employee_id=%s, date=%q", employeeID, date)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /employees/{id}/appointments - Failed to get agenda: employee_id=%s, error=%v", employeeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /employees/{id}/appointments - Agenda retrieved: employee_id=%s, date=%s, count=%d",
		employeeID, date, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
