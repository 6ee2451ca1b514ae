package start_reschedule

import "github.com/m04kA/SMC-SalonBooking/internal/service/lines"

// Request модель запроса на перенос сессии пакета
// ClientID необязателен: по умолчанию берется клиент, выбранный в черновике
type Request struct {
	DraftID       string
	ClientID      string
	PackageID     string
	AppointmentID string
}

// Response состояние черновика после переноса
type Response struct {
	State lines.State
}
