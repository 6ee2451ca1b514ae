package eligibility

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository каталог услуг
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
}

// PackageProvider активные пакеты клиента в нормализованном виде
type PackageProvider interface {
	ListActive(ctx context.Context, clientID string) ([]*domain.CanonicalPackage, error)
}

// PendingProvider очередь долгов по услугам
type PendingProvider interface {
	LoadPendingFor(ctx context.Context, clientID string, supplied []domain.PendingService) ([]domain.PendingService, error)
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
