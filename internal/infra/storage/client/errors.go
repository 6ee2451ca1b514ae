package client

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("client.repository: client not found")

	// ErrQuery возвращается при ошибке запроса к DynamoDB
	ErrQuery = errors.New("client.repository: failed to query table")

	// ErrDecodeItem возвращается, когда документ не удается разобрать
	ErrDecodeItem = errors.New("client.repository: failed to decode item")
)
