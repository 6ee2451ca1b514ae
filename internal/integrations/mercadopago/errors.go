package mercadopago

import "errors"

var (
	// ErrMissingAccessToken возвращается, когда токен доступа не задан вне mock режима
	ErrMissingAccessToken = errors.New("mercadopago client: missing access token")

	// ErrInvalidPaymentID возвращается, когда ID платежа не является числом
	ErrInvalidPaymentID = errors.New("mercadopago client: invalid payment id")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mercadopago client: internal error")
)
