package confirm_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на подтверждение черновика
type Request struct {
	DraftID string
}

// Response модель ответа с созданными записями
type Response struct {
	DraftID      string
	ClientID     string
	Mode         string
	PackageID    *string
	Appointments []Appointment
}

// Appointment созданная запись
type Appointment struct {
	ID                    string
	ServiceID             string
	ServiceName           string
	EmployeeID            string
	Provenance            string
	Date                  time.Time
	StartTime             types.TimeString
	DurationMinutes       int
	Status                string
	PendingServiceID      *string
	OriginalAppointmentID *string
}
