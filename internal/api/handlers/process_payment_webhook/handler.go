package process_payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	processPaymentWebhook "github.com/m04kA/SMC-SalonBooking/internal/usecase/process_payment_webhook"
)

const (
	msgInvalidRequestBody = "некорректное тело уведомления"
	msgInvalidPayload     = "в уведомлении нет type или data.id"
	msgPaymentLookup      = "не удалось получить платеж у провайдера"
)

const maxWebhookBytes = 64 << 10

type Handler struct {
	useCase ProcessPaymentWebhookUseCase
	logger  Logger
}

func NewHandler(useCase ProcessPaymentWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/payments
// Публичный маршрут: провайдер повторяет уведомление, пока не получит 2xx
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Провайдер добавляет свои поля, поэтому неизвестные поля не запрещаем
	var req WebhookRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxWebhookBytes)).Decode(&req); err != nil {
		h.logger.Warn("POST /webhooks/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, processPaymentWebhook.ErrInvalidPayload):
			h.logger.Warn("POST /webhooks/payments - Invalid payload: type=%q", req.Type)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		case errors.Is(err, processPaymentWebhook.ErrPaymentLookup):
			h.logger.Error("POST /webhooks/payments - Payment lookup failed: error=%v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentLookup)

		default:
			h.logger.Error("POST /webhooks/payments - Failed to process webhook: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Processed {
		h.logger.Info("POST /webhooks/payments - Event ignored: type=%s, action=%s", req.Type, req.Action)
	} else {
		h.logger.Info("POST /webhooks/payments - Payment processed: payment_id=%s, transaction_id=%s, status=%s, created=%t",
			result.PaymentID, result.TransactionID, result.TransactionStatus, result.Created)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
