package config

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки салона не заполнены
	ErrSettingsNotFound = errors.New("config: company settings not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("config: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("config: internal error")
)
