package get_pending_services

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// PendingServicesResponse открытые долги клиента
type PendingServicesResponse struct {
	ClientID string                   `json:"clientId"`
	Items    []PendingServiceResponse `json:"pendingServices"`
}

// PendingServiceResponse долг по услуге
type PendingServiceResponse struct {
	ID        string `json:"id"`
	ServiceID string `json:"serviceId"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}

// FromDomain конвертирует очередь в DTO
func FromDomain(clientID string, items []domain.PendingService) *PendingServicesResponse {
	resp := &PendingServicesResponse{
		ClientID: clientID,
		Items:    make([]PendingServiceResponse, 0, len(items)),
	}
	for _, p := range items {
		resp.Items = append(resp.Items, PendingServiceResponse{
			ID:        p.ID,
			ServiceID: p.ServiceID,
			Name:      p.Name,
			Status:    string(p.Status),
		})
	}
	return resp
}
