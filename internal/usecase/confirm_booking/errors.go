package confirm_booking

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("confirm_booking: draft not found")

	// ErrFormInvalid возвращается, когда черновик не готов к подтверждению
	// Ничего не отправляется
	ErrFormInvalid = errors.New("confirm_booking: form is not valid")

	// ErrBookingRejected возвращается, когда запрос отклонен при создании записей
	// (сотрудник или услуга не найдены, некорректные дата или время)
	ErrBookingRejected = errors.New("confirm_booking: booking request rejected")

	// ErrSlotNotAvailable возвращается, когда время одной из строк уже занято
	ErrSlotNotAvailable = errors.New("confirm_booking: slot is not available")

	// ErrNotEntitled возвращается, когда пакет клиента не покрывает строки черновика
	// (услуги нет в пакете, сессии закончились или пакет не найден)
	ErrNotEntitled = errors.New("confirm_booking: package does not cover requested sessions")

	// ErrConfirmInProgress возвращается, когда черновик уже подтверждается другим запросом
	ErrConfirmInProgress = errors.New("confirm_booking: draft confirmation already in progress")

	// ErrEntitlementConflict возвращается, когда пакет или долг по услуге изменились параллельно
	ErrEntitlementConflict = errors.New("confirm_booking: package or pending service changed concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
