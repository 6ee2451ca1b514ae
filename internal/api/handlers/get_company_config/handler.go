package get_company_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/config"
)

const msgNotFound = "настройки салона не найдены"

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleDisplayName GET /api/v1/company
// Публичный endpoint - без авторизации
func (h *Handler) HandleDisplayName(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetDisplayName(r.Context())
	if err != nil {
		h.respondError(w, "GET /company", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSettings GET /api/v1/company/settings
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.respondError(w, "GET /company/settings", err)
		return
	}

	h.logger.Info("GET /company/settings - Settings retrieved successfully: id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, config.ErrSettingsNotFound) {
		h.logger.Warn("%s - Settings not found", route)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Error("%s - Failed to get settings: %v", route, err)
	handlers.RespondInternalError(w)
}
