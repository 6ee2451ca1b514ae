package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentResponse запись клиента
type AppointmentResponse struct {
	ID                    string  `json:"id"`
	ClientID              string  `json:"clientId"`
	EmployeeID            string  `json:"employeeId"`
	ServiceID             string  `json:"serviceId"`
	ServiceName           string  `json:"serviceName,omitempty"`
	Tipo                  string  `json:"tipo"`
	PackageID             *string `json:"packageId"`
	PendingServiceID      *string `json:"pendingServiceId,omitempty"`
	OriginalAppointmentID *string `json:"originalAppointmentId,omitempty"`
	Date                  string  `json:"data"`
	Time                  string  `json:"hora"`
	DurationMinutes       int     `json:"durationMinutes"`
	Status                string  `json:"status"`
	Notes                 *string `json:"notes,omitempty"`
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
}

// AgendaResponse записи сотрудника на дату
type AgendaResponse struct {
	EmployeeID   string                `json:"employeeId"`
	Date         string                `json:"data"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                    a.ID,
		ClientID:              a.ClientID,
		EmployeeID:            a.EmployeeID,
		ServiceID:             a.ServiceID,
		ServiceName:           a.ServiceName,
		Tipo:                  string(a.Provenance),
		PackageID:             a.PackageID,
		PendingServiceID:      a.PendingServiceID,
		OriginalAppointmentID: a.OriginalAppointmentID,
		Date:                  a.Date.Format(domain.DateFormat),
		Time:                  a.StartTime.String(),
		DurationMinutes:       a.DurationMinutes,
		Status:                string(a.Status),
		Notes:                 a.Notes,
		CreatedAt:             a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointments конвертирует список записей
func FromDomainAppointments(items []*domain.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(items))
	for _, a := range items {
		result = append(result, FromDomainAppointment(a))
	}
	return result
}
