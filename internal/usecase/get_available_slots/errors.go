package get_available_slots

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("get_available_slots: draft not found")

	// ErrLineNotFound возвращается, когда строки с таким индексом нет
	ErrLineNotFound = errors.New("get_available_slots: line not found")

	// ErrLineIncomplete возвращается, когда в строке не выбраны сотрудник или дата
	ErrLineIncomplete = errors.New("get_available_slots: line has no employee or date")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("get_available_slots: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("get_available_slots: invalid booking date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
