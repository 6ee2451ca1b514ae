package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type BookingService interface {
	CancelAppointment(ctx context.Context, id string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
