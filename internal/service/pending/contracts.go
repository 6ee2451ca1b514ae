package pending

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// PendingRepository выделенное хранилище долгов по услугам
type PendingRepository interface {
	ListByClientAndStatus(ctx context.Context, clientID string, status domain.PendingServiceStatus) ([]*domain.PendingService, error)
}

// ClientRepository хранилище клиентов (старая форма: долги внутри документа клиента)
type ClientRepository interface {
	GetByID(ctx context.Context, clientID string) (*domain.Client, error)
}

// CatalogRepository каталог услуг для подстановки имен
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
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
