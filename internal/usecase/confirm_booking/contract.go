package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
)

// DraftStore черновики открытых рабочих процессов записи
type DraftStore interface {
	Get(id string) (*lines.Draft, error)
	Discard(id string) error
}

// PackageProvider активные пакеты клиента в канонической форме
type PackageProvider interface {
	ListActive(ctx context.Context, clientID string) ([]*domain.CanonicalPackage, error)
}

// BookingCreator создает все записи запроса одним вызовом
type BookingCreator interface {
	CreateBatch(ctx context.Context, req domain.BookingRequest) ([]*domain.Appointment, error)
}

// MetricsRecorder счетчик подтвержденных записей
type MetricsRecorder interface {
	IncBookingsConfirmed(mode string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
