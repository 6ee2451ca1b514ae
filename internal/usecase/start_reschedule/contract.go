package start_reschedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
)

// DraftStore черновики открытых рабочих процессов записи
type DraftStore interface {
	Get(id string) (*lines.Draft, error)
}

// PackageProvider активный пакет клиента в канонической форме
type PackageProvider interface {
	GetActive(ctx context.Context, clientID, packageID string) (*domain.CanonicalPackage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
