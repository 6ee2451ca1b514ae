package get_client_packages

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/packages"
)

const (
	msgInvalidInput    = "ID клиента и пакета обязательны"
	msgPackageNotFound = "активный пакет клиента не найден"
)

type Handler struct {
	service PackageService
	logger  Logger
}

func NewHandler(service PackageService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/packages
// Активные пакеты в нормализованном виде с остатком по каждой услуге
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	result, err := h.service.ListActiveWithLedger(r.Context(), clientID)
	if err != nil {
		h.respondError(w, "GET /clients/{id}/packages", clientID, err)
		return
	}

	h.logger.Info("GET /clients/{id}/packages - Packages retrieved: client_id=%s, count=%d", clientID, len(result.Packages))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSessions GET /api/v1/clients/{clientId}/packages/{packageId}/sessions?serviceId=
func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID := vars["clientId"]
	packageID := vars["packageId"]
	serviceID := r.URL.Query().Get("serviceId")

	result, err := h.service.GetSessions(r.Context(), clientID, packageID, serviceID)
	if err != nil {
		h.respondError(w, "GET /clients/{id}/packages/{id}/sessions", clientID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route, clientID string, err error) {
	switch {
	case errors.Is(err, packages.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: client_id=%s, error=%v", route, clientID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, packages.ErrPackageNotFound):
		h.logger.Warn("%s - Package not found: client_id=%s", route, clientID)
		handlers.RespondNotFound(w, msgPackageNotFound)

	default:
		h.logger.Error("%s - Failed to get packages: client_id=%s, error=%v", route, clientID, err)
		handlers.RespondInternalError(w)
	}
}
