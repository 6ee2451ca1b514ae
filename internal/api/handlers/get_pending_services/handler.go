package get_pending_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pending"
)

const msgMissingClientID = "ID клиента обязателен"

type Handler struct {
	service PendingService
	logger  Logger
}

func NewHandler(service PendingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/pending-services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	items, err := h.service.LoadPendingFor(r.Context(), clientID, nil)
	if err != nil {
		if errors.Is(err, pending.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgMissingClientID)
			return
		}
		h.logger.Error("GET /clients/{id}/pending-services - Failed to load: client_id=%s, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(clientID, items))
}
