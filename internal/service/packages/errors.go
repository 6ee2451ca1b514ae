package packages

import "errors"

var (
	// ErrPackageNotFound возвращается, когда активный пакет клиента не найден
	ErrPackageNotFound = errors.New("packages: package not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("packages: invalid input data")
)
