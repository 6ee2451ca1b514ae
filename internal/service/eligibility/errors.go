package eligibility

import "errors"

var (
	// ErrInvalidMode неизвестный режим записи
	ErrInvalidMode = errors.New("eligibility: invalid booking mode")

	// ErrClientRequired режимы pacote и pendente требуют клиента
	ErrClientRequired = errors.New("eligibility: client is required")

	// ErrPackageRequired пакет не выбран и у клиента не один активный пакет
	ErrPackageRequired = errors.New("eligibility: package is required")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("eligibility: internal error")
)
