package process_payment_webhook

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// MapTransactionStatus статус платежа провайдера → статус финансовой операции
// Неизвестные статусы считаются ожидающими
func MapTransactionStatus(providerStatus string) domain.TransactionStatus {
	switch providerStatus {
	case "approved":
		return domain.TransactionPaid
	case "pending":
		return domain.TransactionPending
	case "authorized", "in_process":
		return domain.TransactionProcessing
	case "in_mediation":
		return domain.TransactionMediation
	case "rejected", "cancelled":
		return domain.TransactionCancelled
	case "refunded":
		return domain.TransactionRefunded
	case "charged_back":
		return domain.TransactionChargeback
	default:
		return domain.TransactionPending
	}
}

// MapSubscriptionStatus статус платежа провайдера → статус подписки
func MapSubscriptionStatus(providerStatus string) domain.SubscriptionStatus {
	switch providerStatus {
	case "approved":
		return domain.SubscriptionActive
	case "rejected", "cancelled", "refunded", "charged_back":
		return domain.SubscriptionCancelled
	default:
		return domain.SubscriptionPending
	}
}
