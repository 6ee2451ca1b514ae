package pendingservice

import "errors"

var (
	// ErrQuery возвращается при ошибке запроса к DynamoDB
	ErrQuery = errors.New("pendingservice.repository: failed to query table")

	// ErrDecodeItem возвращается, когда документ не удается разобрать
	ErrDecodeItem = errors.New("pendingservice.repository: failed to decode item")
)
