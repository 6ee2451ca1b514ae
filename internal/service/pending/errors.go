package pending

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pending: invalid input data")

	// ErrPendingNotFound возвращается, когда открытый долг клиента не найден
	ErrPendingNotFound = errors.New("pending: pending service not found")
)
