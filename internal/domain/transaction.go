package domain

import "time"

// TransactionType тип финансовой операции
type TransactionType string

const (
	TransactionIncome  TransactionType = "receita"
	TransactionExpense TransactionType = "despesa"
)

// TransactionCategory категория финансовой операции
type TransactionCategory string

const CategorySubscription TransactionCategory = "assinatura"

// TransactionStatus статус финансовой операции
type TransactionStatus string

const (
	TransactionPaid       TransactionStatus = "pago"
	TransactionPending    TransactionStatus = "pendente"
	TransactionProcessing TransactionStatus = "processando"
	TransactionCancelled  TransactionStatus = "cancelado"
	TransactionRefunded   TransactionStatus = "reembolsado"
	TransactionMediation  TransactionStatus = "em_mediacao"
	TransactionChargeback TransactionStatus = "estornado"
)

// SubscriptionStatus статус подписки салона
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ativa"
	SubscriptionPending   SubscriptionStatus = "pendente"
	SubscriptionCancelled SubscriptionStatus = "cancelada"
)

// FinancialTransaction запись кассы/финансов
// Для подписки одна запись на событие биллинга: ключ (ReferenceID, Type, Category)
type FinancialTransaction struct {
	ID             string
	ReferenceID    string // ID платежа у провайдера
	Type           TransactionType
	Category       TransactionCategory
	Description    string
	Amount         float64
	Status         TransactionStatus
	SubscriptionID string
	PaymentMethod  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransactionKey ID операции, выведенный из ключа события биллинга
// Повторная доставка того же события попадает в тот же документ
func TransactionKey(txType TransactionType, category TransactionCategory, referenceID string) string {
	return string(txType) + "#" + string(category) + "#" + referenceID
}
