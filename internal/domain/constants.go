package domain

import "time"

// Имена по умолчанию
const (
	DefaultPackageName            = "Pacote"
	PendingServicePlaceholderName = "Procedimento Pendente"
)

// EmptyCustomPackageWarning предупреждение для персонализированного пакета без доступных услуг
const EmptyCustomPackageWarning = "Este pacote não possui serviços definidos. Entre em contato com o administrador."

// Окно записи: слоты генерируются с SlotWindowStart включительно до SlotWindowEnd исключительно
const (
	SlotWindowStart = "08:00"
	SlotWindowEnd   = "20:00"
)

// DefaultAppointmentDurationMinutes длительность записи, если у услуги и сотрудника она не задана
const DefaultAppointmentDurationMinutes = 30

// Ограничения бизнес-валидации
const (
	MaxDraftLines  = 20
	MaxNotesLength = 500
)

// Черновики: простой дольше DefaultDraftIdleTTL закрывает черновик,
// сверх DefaultMaxOpenDrafts закрывается самый давно не использованный
const (
	DefaultDraftIdleTTL  = 2 * time.Hour
	DefaultMaxOpenDrafts = 10000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveAppointmentStatuses статусы, не занимающие время сотрудника
// Используется при подсчете конфликтов
var InactiveAppointmentStatuses = []AppointmentStatus{
	AppointmentCancelled,
	AppointmentNoShow,
}
