package start_reschedule

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("start_reschedule: draft not found")

	// ErrInvalidInput возвращается, когда не указаны клиент, пакет или запись
	ErrInvalidInput = errors.New("start_reschedule: invalid input data")

	// ErrPackageNotFound возвращается, когда пакет не найден среди активных пакетов клиента
	ErrPackageNotFound = errors.New("start_reschedule: package not found")

	// ErrSessionNotFound возвращается, когда в истории пакета нет сессии с такой записью
	ErrSessionNotFound = errors.New("start_reschedule: session not found")

	// ErrSessionConcluded возвращается при попытке перенести состоявшуюся сессию
	ErrSessionConcluded = errors.New("start_reschedule: session already concluded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_reschedule: internal error")
)
