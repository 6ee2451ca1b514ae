package bookings

import "errors"

var (
	// ErrInvalidRequest возвращается при неполном или противоречивом запросе
	ErrInvalidRequest = errors.New("bookings: invalid booking request")

	// ErrEmployeeNotFound возвращается, когда сотрудник строки не найден
	ErrEmployeeNotFound = errors.New("bookings: employee not found")

	// ErrServiceNotFound возвращается, когда услуга строки не найдена
	ErrServiceNotFound = errors.New("bookings: service not found")

	// ErrSlotNotAvailable возвращается, когда время строки пересекается с другой записью сотрудника
	ErrSlotNotAvailable = errors.New("bookings: slot is not available")

	// ErrPackageNotFound возвращается, когда пакет запроса не найден или принадлежит другому клиенту
	ErrPackageNotFound = errors.New("bookings: package not found")

	// ErrNotEntitled возвращается, когда пакет не покрывает услугу строки
	// или сессий услуги осталось меньше, чем строк
	ErrNotEntitled = errors.New("bookings: package does not cover requested sessions")

	// ErrEntitlementConflict возвращается, когда пакет перестал быть активным
	// или долг по услуге уже израсходован другой записью
	ErrEntitlementConflict = errors.New("bookings: package or pending service changed concurrently")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("bookings: appointment not found")

	// ErrAppointmentNotCancellable возвращается при отмене завершенной или уже отмененной записи
	ErrAppointmentNotCancellable = errors.New("bookings: appointment cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
