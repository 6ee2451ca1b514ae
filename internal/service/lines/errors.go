package lines

import "errors"

var (
	// ErrDraftNotFound черновик не найден (закрыт или не существовал)
	ErrDraftNotFound = errors.New("lines: draft not found")

	// ErrLineIndexOutOfRange индекс строки вне диапазона
	ErrLineIndexOutOfRange = errors.New("lines: line index out of range")

	// ErrFirstLineNotRemovable первая строка черновика не удаляется
	ErrFirstLineNotRemovable = errors.New("lines: first line cannot be removed")

	// ErrTooManyLines превышено максимальное количество строк
	ErrTooManyLines = errors.New("lines: too many lines")

	// ErrUnknownField неизвестное поле строки
	ErrUnknownField = errors.New("lines: unknown line field")

	// ErrConfirmInProgress черновик уже подтверждается другим запросом
	ErrConfirmInProgress = errors.New("lines: draft confirmation in progress")
)
