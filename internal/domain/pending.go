package domain

// PendingServiceStatus статус долга по услуге
type PendingServiceStatus string

const (
	PendingOpen      PendingServiceStatus = "pendente"
	PendingScheduled PendingServiceStatus = "agendado"
)

// PendingService услуга, которую салон должен клиенту вне пакета (например, переделка)
type PendingService struct {
	ID        string
	ClientID  string
	ServiceID string
	Name      string
	Status    PendingServiceStatus
}

// IsOpen услуга еще не использована
func (p *PendingService) IsOpen() bool {
	return p.Status == PendingOpen
}
