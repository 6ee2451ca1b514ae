package select_pending_service

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
)

// DraftStore черновики открытых рабочих процессов записи
type DraftStore interface {
	Get(id string) (*lines.Draft, error)
}

// PendingProvider открытые долги клиента по услугам
type PendingProvider interface {
	GetOpen(ctx context.Context, clientID, pendingServiceID string) (*domain.PendingService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
