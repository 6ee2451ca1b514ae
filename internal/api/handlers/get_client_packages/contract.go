package get_client_packages

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/packages/models"
)

type PackageService interface {
	ListActiveWithLedger(ctx context.Context, clientID string) (*models.PackageListResponse, error)
	GetSessions(ctx context.Context, clientID, packageID, serviceID string) (*models.SessionsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
