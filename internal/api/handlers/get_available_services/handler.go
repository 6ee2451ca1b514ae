package get_available_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableServices "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_services"
)

const (
	msgInvalidMode      = "некорректный режим записи, ожидается pacote, avulso или pendente"
	msgClientRequired   = "для режима требуется ID клиента"
	msgPackageRequired  = "выберите пакет: у клиента не один активный пакет"
	msgEmployeeNotFound = "сотрудник не найден"
)

type Handler struct {
	useCase GetAvailableServicesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableServicesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/available-services
// Query params: mode (required), clientId, packageId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &getAvailableServices.Request{
		EmployeeID: mux.Vars(r)["employeeId"],
		Mode:       domain.Provenance(query.Get("mode")),
		ClientID:   query.Get("clientId"),
		PackageID:  query.Get("packageId"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableServices.ErrInvalidMode):
			h.logger.Warn("GET /employees/{id}/available-services - Invalid mode: %q", req.Mode)
			handlers.RespondBadRequest(w, msgInvalidMode)

		case errors.Is(err, getAvailableServices.ErrClientRequired):
			handlers.RespondBadRequest(w, msgClientRequired)

		case errors.Is(err, getAvailableServices.ErrPackageRequired):
			handlers.RespondUnprocessable(w, msgPackageRequired)

		case errors.Is(err, getAvailableServices.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/available-services - Employee not found: employee_id=%s", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /employees/{id}/available-services - Failed: employee_id=%s, mode=%s, error=%v",
				req.EmployeeID, req.Mode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/available-services - employee_id=%s, mode=%s, services=%d",
		req.EmployeeID, req.Mode, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
