package mercadopago

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// Client клиент для чтения платежей Mercado Pago
type Client struct {
	api      payment.Client
	mockMode bool
	log      Logger
}

// NewClient создает клиент; в mock режиме запросы к провайдеру не выполняются
func NewClient(accessToken string, mockMode bool, log Logger) (*Client, error) {
	if mockMode {
		log.Warn("Mercado Pago client: mock mode enabled")
		return &Client{mockMode: true, log: log}, nil
	}

	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create sdk config: %v", ErrInternal, err)
	}

	log.Info("Mercado Pago client initialized")
	return &Client{api: payment.NewClient(cfg), log: log}, nil
}

// GetPayment получает платеж по ID из уведомления
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentID, paymentID)
	}

	if c.mockMode {
		c.log.Info("Mercado Pago client: mock payment id=%d", id)
		return &Payment{
			ID:           paymentID,
			Status:       "approved",
			StatusDetail: "accredited",
		}, nil
	}

	resp, err := c.api.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get payment id=%d: %v", ErrInternal, id, err)
	}

	return &Payment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		StatusDetail:      resp.StatusDetail,
		ExternalReference: resp.ExternalReference,
		Amount:            resp.TransactionAmount,
		PaymentMethodID:   resp.PaymentMethodID,
	}, nil
}
