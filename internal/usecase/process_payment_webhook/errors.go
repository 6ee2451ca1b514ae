package process_payment_webhook

import "errors"

var (
	// ErrInvalidPayload возвращается, когда в уведомлении нет type или data.id
	ErrInvalidPayload = errors.New("process_payment_webhook: invalid payload")

	// ErrPaymentLookup возвращается, когда платеж не удалось получить у провайдера
	ErrPaymentLookup = errors.New("process_payment_webhook: failed to get payment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_payment_webhook: internal error")
)
