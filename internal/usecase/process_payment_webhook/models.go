package process_payment_webhook

// EventTypePayment тип уведомления о платеже
const EventTypePayment = "payment"

// Request уведомление провайдера {type, action, data: {id}}
type Request struct {
	Type   string
	Action string
	DataID string
}

// Response результат обработки
type Response struct {
	Processed          bool // false для неизвестных типов уведомлений
	PaymentID          string
	TransactionID      string
	TransactionStatus  string
	Created            bool // операция создана, а не обновлена
	SubscriptionID     string
	SubscriptionStatus string
}
