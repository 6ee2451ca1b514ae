package mercadopago

// Payment платеж в том виде, который нужен обработке вебхука
type Payment struct {
	ID                string
	Status            string // approved, pending, in_process, rejected, ...
	StatusDetail      string
	ExternalReference string // ID подписки салона
	Amount            float64
	PaymentMethodID   string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
