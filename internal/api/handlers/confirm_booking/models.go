package confirm_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	confirmBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_booking"
)

// ConfirmBookingResponse HTTP response model
type ConfirmBookingResponse struct {
	DraftID      string                `json:"draftId"`
	ClientID     string                `json:"clientId"`
	Mode         string                `json:"mode"`
	PackageID    *string               `json:"packageId,omitempty"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// AppointmentResponse созданная запись
type AppointmentResponse struct {
	ID                    string  `json:"id"`
	ServiceID             string  `json:"serviceId"`
	ServiceName           string  `json:"serviceName"`
	EmployeeID            string  `json:"employeeId"`
	Provenance            string  `json:"tipo"`
	Date                  string  `json:"data"`
	StartTime             string  `json:"hora"`
	DurationMinutes       int     `json:"durationMinutes"`
	Status                string  `json:"status"`
	PendingServiceID      *string `json:"pendingServiceId,omitempty"`
	OriginalAppointmentID *string `json:"originalAppointmentId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmBookingResponse {
	appointments := make([]AppointmentResponse, len(resp.Appointments))
	for i, a := range resp.Appointments {
		appointments[i] = AppointmentResponse{
			ID:                    a.ID,
			ServiceID:             a.ServiceID,
			ServiceName:           a.ServiceName,
			EmployeeID:            a.EmployeeID,
			Provenance:            a.Provenance,
			Date:                  a.Date.Format(domain.DateFormat),
			StartTime:             a.StartTime.String(),
			DurationMinutes:       a.DurationMinutes,
			Status:                a.Status,
			PendingServiceID:      a.PendingServiceID,
			OriginalAppointmentID: a.OriginalAppointmentID,
		}
	}

	return &ConfirmBookingResponse{
		DraftID:      resp.DraftID,
		ClientID:     resp.ClientID,
		Mode:         resp.Mode,
		PackageID:    resp.PackageID,
		Appointments: appointments,
	}
}
