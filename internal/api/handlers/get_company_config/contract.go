package get_company_config

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/config/models"
)

type ConfigService interface {
	GetDisplayName(ctx context.Context) (*models.DisplayNameResponse, error)
	Get(ctx context.Context) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
