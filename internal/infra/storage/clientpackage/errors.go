package clientpackage

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("clientpackage.repository: package not found")

	// ErrQuery возвращается при ошибке запроса к DynamoDB
	ErrQuery = errors.New("clientpackage.repository: failed to query table")

	// ErrDecodeItem возвращается, когда документ пакета не удается разобрать
	ErrDecodeItem = errors.New("clientpackage.repository: failed to decode item")
)
