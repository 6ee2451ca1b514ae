package packages

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// PackageRepository интерфейс хранилища купленных пакетов
type PackageRepository interface {
	ListByClientAndStatus(ctx context.Context, clientID string, status domain.PackageStatus) ([]*domain.ClientPackage, error)
}

// CatalogRepository интерфейс каталога шаблонов пакетов
type CatalogRepository interface {
	ListPackageTemplates(ctx context.Context) ([]*domain.PackageTemplate, error)
}

// DegradationRecorder учитывает чтения, деградировавшие до пустого результата
type DegradationRecorder interface {
	IncFetchDegradation(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
