package process_payment_webhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	transactionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/transaction"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/mercadopago"
	"github.com/m04kA/SMC-SalonBooking/internal/usecase/process_payment_webhook/mocks"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type deps struct {
	gateway       *mocks.MockPaymentGateway
	transactions  *mocks.MockTransactionRepository
	subscriptions *mocks.MockSubscriptionRepository
	metrics       *mocks.MockMetricsRecorder
	uc            *UseCase
}

func newDeps(t *testing.T) *deps {
	ctrl := gomock.NewController(t)
	d := &deps{
		gateway:       mocks.NewMockPaymentGateway(ctrl),
		transactions:  mocks.NewMockTransactionRepository(ctrl),
		subscriptions: mocks.NewMockSubscriptionRepository(ctrl),
		metrics:       mocks.NewMockMetricsRecorder(ctrl),
	}
	d.uc = NewUseCase(d.gateway, d.transactions, d.subscriptions, d.metrics, logger.NewNop())
	d.uc.timeProvider = fixedTime{now: testNow}
	return d
}

func TestMapTransactionStatus(t *testing.T) {
	tests := map[string]domain.TransactionStatus{
		"approved":     domain.TransactionPaid,
		"pending":      domain.TransactionPending,
		"authorized":   domain.TransactionProcessing,
		"in_process":   domain.TransactionProcessing,
		"in_mediation": domain.TransactionMediation,
		"rejected":     domain.TransactionCancelled,
		"cancelled":    domain.TransactionCancelled,
		"refunded":     domain.TransactionRefunded,
		"charged_back": domain.TransactionChargeback,
		"something":    domain.TransactionPending,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapTransactionStatus(in), in)
	}
}

func TestMapSubscriptionStatus(t *testing.T) {
	tests := map[string]domain.SubscriptionStatus{
		"approved":     domain.SubscriptionActive,
		"pending":      domain.SubscriptionPending,
		"in_process":   domain.SubscriptionPending,
		"authorized":   domain.SubscriptionPending,
		"in_mediation": domain.SubscriptionPending,
		"rejected":     domain.SubscriptionCancelled,
		"cancelled":    domain.SubscriptionCancelled,
		"refunded":     domain.SubscriptionCancelled,
		"charged_back": domain.SubscriptionCancelled,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapSubscriptionStatus(in), in)
	}
}

func TestExecute_InvalidPayload(t *testing.T) {
	d := newDeps(t)

	t.Run("missing type", func(t *testing.T) {
		_, err := d.uc.Execute(context.Background(), &Request{DataID: "1"})
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("missing data id", func(t *testing.T) {
		_, err := d.uc.Execute(context.Background(), &Request{Type: "payment"})
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})
}

func TestExecute_IgnoresOtherTypes(t *testing.T) {
	d := newDeps(t)
	d.metrics.EXPECT().IncWebhookEvent("merchant_order", "ignored")

	resp, err := d.uc.Execute(context.Background(), &Request{Type: "merchant_order", DataID: "1"})
	require.NoError(t, err)
	assert.False(t, resp.Processed)
}

func TestExecute_CreatesTransactionAndActivatesSubscription(t *testing.T) {
	d := newDeps(t)

	d.gateway.EXPECT().GetPayment(gomock.Any(), "987").Return(&mercadopago.Payment{
		ID:                "987",
		Status:            "approved",
		ExternalReference: "sub-1",
		Amount:            149.9,
		PaymentMethodID:   "pix",
	}, nil)
	d.transactions.EXPECT().
		FindByReference(gomock.Any(), "987", domain.TransactionIncome, domain.CategorySubscription).
		Return(nil, transactionRepo.ErrTransactionNotFound)
	d.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *domain.FinancialTransaction) error {
			assert.Equal(t, "receita#assinatura#987", tx.ID)
			assert.Equal(t, "987", tx.ReferenceID)
			assert.Equal(t, domain.TransactionPaid, tx.Status)
			assert.Equal(t, "sub-1", tx.SubscriptionID)
			assert.Equal(t, 149.9, tx.Amount)
			assert.Equal(t, "pix", tx.PaymentMethod)
			return nil
		})
	d.subscriptions.EXPECT().UpdateSubscriptionStatus(gomock.Any(), "sub-1", domain.SubscriptionActive, testNow).Return(nil)
	d.metrics.EXPECT().IncWebhookEvent("payment", "pago")

	resp, err := d.uc.Execute(context.Background(), &Request{Type: "payment", Action: "payment.created", DataID: "987"})
	require.NoError(t, err)
	assert.True(t, resp.Processed)
	assert.True(t, resp.Created)
	assert.Equal(t, "receita#assinatura#987", resp.TransactionID)
	assert.Equal(t, "ativa", resp.SubscriptionStatus)
}

func TestExecute_UpdatesExistingTransaction(t *testing.T) {
	d := newDeps(t)

	d.gateway.EXPECT().GetPayment(gomock.Any(), "987").Return(&mercadopago.Payment{
		ID:                "987",
		Status:            "refunded",
		ExternalReference: "sub-1",
		Amount:            149.9,
	}, nil)
	d.transactions.EXPECT().
		FindByReference(gomock.Any(), "987", domain.TransactionIncome, domain.CategorySubscription).
		Return(&domain.FinancialTransaction{ID: "tx-old", ReferenceID: "987", Status: domain.TransactionPaid}, nil)
	d.transactions.EXPECT().UpdateStatus(gomock.Any(), "tx-old", domain.TransactionRefunded, 149.9, testNow).Return(nil)
	d.subscriptions.EXPECT().UpdateSubscriptionStatus(gomock.Any(), "sub-1", domain.SubscriptionCancelled, testNow).Return(nil)
	d.metrics.EXPECT().IncWebhookEvent("payment", "reembolsado")

	resp, err := d.uc.Execute(context.Background(), &Request{Type: "payment", Action: "payment.updated", DataID: "987"})
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, "tx-old", resp.TransactionID)
	assert.Equal(t, "cancelada", resp.SubscriptionStatus)
}

func TestExecute_ConcurrentDeliveryUpdatesInsteadOfDuplicating(t *testing.T) {
	d := newDeps(t)

	d.gateway.EXPECT().GetPayment(gomock.Any(), "987").Return(&mercadopago.Payment{
		ID:     "987",
		Status: "approved",
		Amount: 149.9,
	}, nil)
	// Индекс еще не видит операцию, созданную параллельной доставкой
	d.transactions.EXPECT().
		FindByReference(gomock.Any(), "987", domain.TransactionIncome, domain.CategorySubscription).
		Return(nil, transactionRepo.ErrTransactionNotFound)
	d.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(transactionRepo.ErrTransactionExists)
	d.transactions.EXPECT().
		UpdateStatus(gomock.Any(), "receita#assinatura#987", domain.TransactionPaid, 149.9, testNow).
		Return(nil)
	d.metrics.EXPECT().IncWebhookEvent("payment", "pago")

	resp, err := d.uc.Execute(context.Background(), &Request{Type: "payment", DataID: "987"})
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, "receita#assinatura#987", resp.TransactionID)
}

func TestExecute_UnknownSubscriptionIsNotFatal(t *testing.T) {
	d := newDeps(t)

	d.gateway.EXPECT().GetPayment(gomock.Any(), "5").Return(&mercadopago.Payment{ID: "5", Status: "pending", ExternalReference: "sub-x"}, nil)
	d.transactions.EXPECT().FindByReference(gomock.Any(), "5", gomock.Any(), gomock.Any()).Return(nil, transactionRepo.ErrTransactionNotFound)
	d.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.subscriptions.EXPECT().UpdateSubscriptionStatus(gomock.Any(), "sub-x", domain.SubscriptionPending, testNow).Return(transactionRepo.ErrSubscriptionNotFound)
	d.metrics.EXPECT().IncWebhookEvent("payment", "pendente")

	resp, err := d.uc.Execute(context.Background(), &Request{Type: "payment", DataID: "5"})
	require.NoError(t, err)
	assert.Empty(t, resp.SubscriptionID)
}

func TestExecute_PaymentWithoutSubscription(t *testing.T) {
	d := newDeps(t)

	d.gateway.EXPECT().GetPayment(gomock.Any(), "6").Return(&mercadopago.Payment{ID: "6", Status: "in_process"}, nil)
	d.transactions.EXPECT().FindByReference(gomock.Any(), "6", gomock.Any(), gomock.Any()).Return(nil, transactionRepo.ErrTransactionNotFound)
	d.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.metrics.EXPECT().IncWebhookEvent("payment", "processando")

	resp, err := d.uc.Execute(context.Background(), &Request{Type: "payment", DataID: "6"})
	require.NoError(t, err)
	assert.Equal(t, "processando", resp.TransactionStatus)
}

func TestExecute_Failures(t *testing.T) {
	t.Run("gateway error", func(t *testing.T) {
		d := newDeps(t)
		d.gateway.EXPECT().GetPayment(gomock.Any(), "1").Return(nil, errors.New("timeout"))

		_, err := d.uc.Execute(context.Background(), &Request{Type: "payment", DataID: "1"})
		assert.ErrorIs(t, err, ErrPaymentLookup)
	})

	t.Run("store error", func(t *testing.T) {
		d := newDeps(t)
		d.gateway.EXPECT().GetPayment(gomock.Any(), "1").Return(&mercadopago.Payment{ID: "1", Status: "approved"}, nil)
		d.transactions.EXPECT().FindByReference(gomock.Any(), "1", gomock.Any(), gomock.Any()).Return(nil, errors.New("throttled"))

		_, err := d.uc.Execute(context.Background(), &Request{Type: "payment", DataID: "1"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
