package select_pending_service

import (
	"context"

	selectPending "github.com/m04kA/SMC-SalonBooking/internal/usecase/select_pending_service"
)

type SelectPendingServiceUseCase interface {
	Execute(ctx context.Context, req *selectPending.Request) (*selectPending.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
