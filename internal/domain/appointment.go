package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentStatus статус записи (агендаменто)
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "agendado"
	AppointmentConfirmed AppointmentStatus = "confirmado"
	AppointmentConcluded AppointmentStatus = "concluido"
	AppointmentCancelled AppointmentStatus = "cancelado"
	AppointmentNoShow    AppointmentStatus = "faltou"
)

// Appointment запись клиента к сотруднику на услугу
type Appointment struct {
	ID         string
	ClientID   string
	EmployeeID string
	ServiceID  string
	Provenance Provenance

	// Связи с источником права на услугу
	PackageID             *string
	PendingServiceID      *string
	OriginalAppointmentID *string // запись, которую переносим

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Денормализованные данные
	ServiceName string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive запись занимает время сотрудника
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentNoShow
}

// EndTime время окончания записи
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// EmployeeAppointmentsFilter фильтр записей сотрудника на дату
type EmployeeAppointmentsFilter struct {
	EmployeeID      string
	Date            time.Time
	IncludeInactive bool // включать отмененные и неявки
}
