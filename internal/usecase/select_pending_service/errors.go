package select_pending_service

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("select_pending_service: draft not found")

	// ErrInvalidInput возвращается, когда не указаны клиент или долг
	ErrInvalidInput = errors.New("select_pending_service: invalid input data")

	// ErrPendingNotFound возвращается, когда открытый долг клиента не найден
	ErrPendingNotFound = errors.New("select_pending_service: pending service not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("select_pending_service: internal error")
)
