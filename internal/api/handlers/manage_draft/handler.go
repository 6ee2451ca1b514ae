package manage_draft

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDraftNotFound      = "черновик записи не найден"
	msgInvalidLineIndex   = "некорректный индекс строки"
	msgLineNotFound       = "строка не найдена"
	msgInvalidMode        = "некорректный режим записи, ожидается pacote, avulso или pendente"
	msgTooManyLines       = "превышено максимальное количество строк"
	msgFirstLine          = "первую строку нельзя удалить"
	msgUnknownField       = "неизвестное поле строки"
	msgUnauthorized       = "пользователь не определен"
)

type Handler struct {
	drafts DraftStore
	logger Logger
}

func NewHandler(drafts DraftStore, logger Logger) *Handler {
	return &Handler{
		drafts: drafts,
		logger: logger,
	}
}

// HandleOpen POST /api/v1/drafts
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	draft := h.drafts.Open(userID)

	h.logger.Info("POST /drafts - Draft opened: draft_id=%s, user_id=%s", draft.ID(), userID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromState(draft.State()))
}

// HandleGet GET /api/v1/drafts/{draftId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, "GET /drafts/{id}")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromState(draft.State()))
}

// HandleDiscard DELETE /api/v1/drafts/{draftId}
// Закрытие процесса безусловно теряет все строки
func (h *Handler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	if err := h.drafts.Discard(draftID); err != nil {
		h.logger.Warn("DELETE /drafts/{id} - Draft not found: draft_id=%s", draftID)
		handlers.RespondNotFound(w, msgDraftNotFound)
		return
	}

	h.logger.Info("DELETE /drafts/{id} - Draft discarded: draft_id=%s", draftID)
	handlers.RespondNoContent(w)
}

// HandleSelect PUT /api/v1/drafts/{draftId}/selection
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, "PUT /drafts/{id}/selection")
	if !ok {
		return
	}

	var req models.SelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /drafts/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	sel := req.ToSelection()
	if sel.Mode != "" && !sel.Mode.IsValid() {
		h.logger.Warn("PUT /drafts/{id}/selection - Invalid mode: %q", req.Mode)
		handlers.RespondBadRequest(w, msgInvalidMode)
		return
	}

	draft.Select(sel)

	h.logger.Info("PUT /drafts/{id}/selection - Selection updated: draft_id=%s, client_id=%s, mode=%s, package_id=%s",
		draft.ID(), sel.ClientID, sel.Mode, sel.PackageID)
	handlers.RespondJSON(w, http.StatusOK, models.FromState(draft.State()))
}

// HandleAddLine POST /api/v1/drafts/{draftId}/lines
func (h *Handler) HandleAddLine(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, "POST /drafts/{id}/lines")
	if !ok {
		return
	}

	if err := draft.AddLine(); err != nil {
		h.logger.Warn("POST /drafts/{id}/lines - Failed to add line: draft_id=%s, error=%v", draft.ID(), err)
		handlers.RespondUnprocessable(w, msgTooManyLines)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, models.FromState(draft.State()))
}

// HandleRemoveLine DELETE /api/v1/drafts/{draftId}/lines/{index}
func (h *Handler) HandleRemoveLine(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, "DELETE /drafts/{id}/lines/{index}")
	if !ok {
		return
	}
	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	if err := draft.RemoveLine(index); err != nil {
		h.respondLineError(w, "DELETE /drafts/{id}/lines/{index}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromState(draft.State()))
}

// HandleUpdateLine PATCH /api/v1/drafts/{draftId}/lines/{index}
// Body: {"field": "hora", "value": "10:00"}
func (h *Handler) HandleUpdateLine(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, "PATCH /drafts/{id}/lines/{index}")
	if !ok {
		return
	}
	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	var req UpdateLineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /drafts/{id}/lines/{index} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := draft.UpdateField(index, req.ToLineField(), req.Value); err != nil {
		h.respondLineError(w, "PATCH /drafts/{id}/lines/{index}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromState(draft.State()))
}

func (h *Handler) draft(w http.ResponseWriter, r *http.Request, route string) (*lines.Draft, bool) {
	draftID := mux.Vars(r)["draftId"]
	draft, err := h.drafts.Get(draftID)
	if err != nil {
		h.logger.Warn("%s - Draft not found: draft_id=%s", route, draftID)
		handlers.RespondNotFound(w, msgDraftNotFound)
		return nil, false
	}
	return draft, true
}

func (h *Handler) lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		handlers.RespondBadRequest(w, msgInvalidLineIndex)
		return 0, false
	}
	return index, true
}

func (h *Handler) respondLineError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, lines.ErrLineIndexOutOfRange):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondNotFound(w, msgLineNotFound)

	case errors.Is(err, lines.ErrFirstLineNotRemovable):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondUnprocessable(w, msgFirstLine)

	case errors.Is(err, lines.ErrUnknownField), errors.Is(err, domain.ErrUnknownLineField):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgUnknownField)

	default:
		h.logger.Error("%s - Failed to update draft: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
