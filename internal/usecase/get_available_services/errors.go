package get_available_services

import "errors"

var (
	// ErrInvalidMode возвращается при неизвестном режиме записи
	ErrInvalidMode = errors.New("get_available_services: invalid booking mode")

	// ErrClientRequired возвращается, когда режим требует клиента
	ErrClientRequired = errors.New("get_available_services: client is required")

	// ErrPackageRequired возвращается, когда пакет не выбран и у клиента не один активный пакет
	ErrPackageRequired = errors.New("get_available_services: package is required")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("get_available_services: employee not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_services: internal error")
)
