package select_pending_service

import "github.com/m04kA/SMC-SalonBooking/internal/service/lines"

// Request модель запроса на запись по долгу клиента
type Request struct {
	DraftID          string
	ClientID         string
	PendingServiceID string
}

// Response состояние черновика после выбора долга
type Response struct {
	State lines.State
}
