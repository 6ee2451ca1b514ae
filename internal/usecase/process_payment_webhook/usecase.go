package process_payment_webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	transactionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/transaction"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/mercadopago"
)

// UseCase use case обработки уведомления о платеже подписки
type UseCase struct {
	gateway          PaymentGateway
	transactionRepo  TransactionRepository
	subscriptionRepo SubscriptionRepository
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	gateway PaymentGateway,
	transactionRepo TransactionRepository,
	subscriptionRepo SubscriptionRepository,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		gateway:          gateway,
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute обрабатывает уведомление
// На одно событие биллинга приходится одна операция: повторное уведомление обновляет её статус
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessPaymentWebhook: type=%s, action=%s, data.id=%s", req.Type, req.Action, req.DataID)

	// 1. Валидация
	if strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.DataID) == "" {
		uc.logger.Warn("ProcessPaymentWebhook: type or data.id is missing")
		return nil, ErrInvalidPayload
	}

	// 2. Остальные типы уведомлений подтверждаем без обработки
	if req.Type != EventTypePayment {
		uc.logger.Info("ProcessPaymentWebhook: ignoring notification of type=%s", req.Type)
		uc.metrics.IncWebhookEvent(req.Type, "ignored")
		return &Response{Processed: false}, nil
	}

	// 3. Платеж у провайдера
	payment, err := uc.gateway.GetPayment(ctx, req.DataID)
	if err != nil {
		uc.logger.Error("ProcessPaymentWebhook: failed to get payment id=%s: %v", req.DataID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentLookup, err)
	}

	txStatus := MapTransactionStatus(payment.Status)
	now := uc.timeProvider.Now()

	// 4. Операция по событию биллинга
	tx, created, err := uc.upsertTransaction(ctx, payment, txStatus)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Processed:         true,
		PaymentID:         payment.ID,
		TransactionID:     tx.ID,
		TransactionStatus: string(txStatus),
		Created:           created,
	}

	// 5. Статус подписки
	if payment.ExternalReference != "" {
		subStatus := MapSubscriptionStatus(payment.Status)
		err := uc.subscriptionRepo.UpdateSubscriptionStatus(ctx, payment.ExternalReference, subStatus, now)
		switch {
		case err == nil:
			resp.SubscriptionID = payment.ExternalReference
			resp.SubscriptionStatus = string(subStatus)
		case errors.Is(err, transactionRepo.ErrSubscriptionNotFound):
			uc.logger.Warn("ProcessPaymentWebhook: subscription id=%s not found", payment.ExternalReference)
		default:
			uc.logger.Error("ProcessPaymentWebhook: failed to update subscription id=%s: %v", payment.ExternalReference, err)
			return nil, fmt.Errorf("%w: failed to update subscription: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncWebhookEvent(req.Type, string(txStatus))
	uc.logger.Info("ProcessPaymentWebhook: payment id=%s processed, transaction id=%s status=%s created=%t",
		payment.ID, tx.ID, txStatus, created)
	return resp, nil
}

func (uc *UseCase) upsertTransaction(
	ctx context.Context,
	payment *mercadopago.Payment,
	status domain.TransactionStatus,
) (*domain.FinancialTransaction, bool, error) {
	now := uc.timeProvider.Now()

	existing, err := uc.transactionRepo.FindByReference(ctx, payment.ID, domain.TransactionIncome, domain.CategorySubscription)
	if err != nil && !errors.Is(err, transactionRepo.ErrTransactionNotFound) {
		uc.logger.Error("ProcessPaymentWebhook: failed to find transaction for payment id=%s: %v", payment.ID, err)
		return nil, false, fmt.Errorf("%w: failed to find transaction: %v", ErrInternal, err)
	}

	if existing != nil {
		if err := uc.transactionRepo.UpdateStatus(ctx, existing.ID, status, payment.Amount, now); err != nil {
			uc.logger.Error("ProcessPaymentWebhook: failed to update transaction id=%s: %v", existing.ID, err)
			return nil, false, fmt.Errorf("%w: failed to update transaction: %v", ErrInternal, err)
		}
		existing.Status = status
		existing.Amount = payment.Amount
		existing.UpdatedAt = now
		return existing, false, nil
	}

	// Ключ документа выводится из события: параллельные доставки не создадут вторую операцию
	tx := &domain.FinancialTransaction{
		ID:             domain.TransactionKey(domain.TransactionIncome, domain.CategorySubscription, payment.ID),
		ReferenceID:    payment.ID,
		Type:           domain.TransactionIncome,
		Category:       domain.CategorySubscription,
		Description:    subscriptionDescription(payment.ExternalReference),
		Amount:         payment.Amount,
		Status:         status,
		SubscriptionID: payment.ExternalReference,
		PaymentMethod:  payment.PaymentMethodID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.transactionRepo.Create(ctx, tx)
	switch {
	case err == nil:
		return tx, true, nil
	case errors.Is(err, transactionRepo.ErrTransactionExists):
		// Операцию только что создала другая доставка того же события
		uc.logger.Warn("ProcessPaymentWebhook: transaction id=%s already exists, updating status", tx.ID)
		if err := uc.transactionRepo.UpdateStatus(ctx, tx.ID, status, payment.Amount, now); err != nil {
			uc.logger.Error("ProcessPaymentWebhook: failed to update transaction id=%s: %v", tx.ID, err)
			return nil, false, fmt.Errorf("%w: failed to update transaction: %v", ErrInternal, err)
		}
		return tx, false, nil
	default:
		uc.logger.Error("ProcessPaymentWebhook: failed to create transaction for payment id=%s: %v", payment.ID, err)
		return nil, false, fmt.Errorf("%w: failed to create transaction: %v", ErrInternal, err)
	}
}

func subscriptionDescription(subscriptionID string) string {
	if subscriptionID == "" {
		return "Assinatura"
	}
	return "Assinatura " + subscriptionID
}
