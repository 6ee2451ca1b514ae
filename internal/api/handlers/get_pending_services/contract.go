package get_pending_services

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type PendingService interface {
	LoadPendingFor(ctx context.Context, clientID string, supplied []domain.PendingService) ([]domain.PendingService, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
