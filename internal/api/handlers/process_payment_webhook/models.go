package process_payment_webhook

import (
	"encoding/json"
	"strings"

	processPaymentWebhook "github.com/m04kA/SMC-SalonBooking/internal/usecase/process_payment_webhook"
)

// WebhookRequest уведомление платежного провайдера
// Провайдер присылает data.id и строкой, и числом
type WebhookRequest struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// ToUseCaseRequest конвертирует HTTP request в request use case
func (r *WebhookRequest) ToUseCaseRequest() *processPaymentWebhook.Request {
	return &processPaymentWebhook.Request{
		Type:   r.Type,
		Action: r.Action,
		DataID: rawID(r.Data.ID),
	}
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// WebhookResponse HTTP response model
type WebhookResponse struct {
	Processed          bool   `json:"processed"`
	PaymentID          string `json:"paymentId,omitempty"`
	TransactionID      string `json:"transactionId,omitempty"`
	TransactionStatus  string `json:"transactionStatus,omitempty"`
	SubscriptionID     string `json:"subscriptionId,omitempty"`
	SubscriptionStatus string `json:"subscriptionStatus,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processPaymentWebhook.Response) *WebhookResponse {
	return &WebhookResponse{
		Processed:          resp.Processed,
		PaymentID:          resp.PaymentID,
		TransactionID:      resp.TransactionID,
		TransactionStatus:  resp.TransactionStatus,
		SubscriptionID:     resp.SubscriptionID,
		SubscriptionStatus: resp.SubscriptionStatus,
	}
}
