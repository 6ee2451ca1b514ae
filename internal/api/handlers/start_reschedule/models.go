package start_reschedule

import startReschedule "github.com/m04kA/SMC-SalonBooking/internal/usecase/start_reschedule"

// StartRescheduleRequest HTTP request model
type StartRescheduleRequest struct {
	ClientID      string `json:"clientId,omitempty"`
	PackageID     string `json:"packageId"`
	AppointmentID string `json:"appointmentId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *StartRescheduleRequest) ToUseCaseRequest(draftID string) *startReschedule.Request {
	return &startReschedule.Request{
		DraftID:       draftID,
		ClientID:      r.ClientID,
		PackageID:     r.PackageID,
		AppointmentID: r.AppointmentID,
	}
}
