package transaction

import "errors"

var (
	// ErrTransactionNotFound возвращается, когда транзакция не найдена
	ErrTransactionNotFound = errors.New("transaction.repository: transaction not found")

	// ErrTransactionExists возвращается, когда операция с таким ID уже сохранена
	ErrTransactionExists = errors.New("transaction.repository: transaction already exists")

	// ErrSubscriptionNotFound возвращается, когда подписка не найдена
	ErrSubscriptionNotFound = errors.New("transaction.repository: subscription not found")

	// ErrQuery возвращается при ошибке запроса к DynamoDB
	ErrQuery = errors.New("transaction.repository: failed to query table")

	// ErrDecodeItem возвращается, когда документ не удается разобрать или собрать
	ErrDecodeItem = errors.New("transaction.repository: failed to decode item")
)
