package process_payment_webhook

//go:generate mockgen -source=contract.go -destination=mocks/mock_contract.go -package=mocks -exclude_interfaces=TimeProvider,Logger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/mercadopago"
)

// PaymentGateway провайдер платежей
type PaymentGateway interface {
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// TransactionRepository финансовые операции
type TransactionRepository interface {
	FindByReference(ctx context.Context, referenceID string, txType domain.TransactionType, category domain.TransactionCategory) (*domain.FinancialTransaction, error)
	Create(ctx context.Context, tx *domain.FinancialTransaction) error
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, amount float64, updatedAt time.Time) error
}

// SubscriptionRepository подписки салона
type SubscriptionRepository interface {
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus, updatedAt time.Time) error
}

// MetricsRecorder счетчик событий вебхука
type MetricsRecorder interface {
	IncWebhookEvent(eventType, status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
