package config

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек салона
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.CompanySettings, error)
	Update(ctx context.Context, settings *domain.CompanySettings) (*domain.CompanySettings, error)
}

// NameCache кэш отображаемого имени салона
type NameCache interface {
	Get() (string, bool)
	Set(name string)
	Invalidate()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
