package start_reschedule

import (
	"context"

	startReschedule "github.com/m04kA/SMC-SalonBooking/internal/usecase/start_reschedule"
)

type StartRescheduleUseCase interface {
	Execute(ctx context.Context, req *startReschedule.Request) (*startReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
