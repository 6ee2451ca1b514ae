package models

import "github.com/m04kA/SMC-SalonBooking/internal/service/eligibility"

// AvailableServicesResponse услуги, доступные сотруднику
type AvailableServicesResponse struct {
	Mode      string             `json:"mode"`
	PackageID *string            `json:"packageId"`
	Services  []AvailableService `json:"services"`
	Warning   *string            `json:"warning,omitempty"`
}

// AvailableService услуга в списке
type AvailableService struct {
	ServiceID        string        `json:"serviceId"`
	Name             string        `json:"name"`
	DurationMinutes  int           `json:"durationMinutes,omitempty"`
	Price            float64       `json:"price,omitempty"`
	PendingServiceID *string       `json:"pendingServiceId,omitempty"`
	Sessions         *SessionsLeft `json:"sessions,omitempty"`
}

// SessionsLeft остаток по пакету
type SessionsLeft struct {
	Total int `json:"total"`
	Used  int `json:"used"`
	Left  int `json:"left"`
}

// FromResult конвертирует результат сервиса в ответ API
func FromResult(r *eligibility.Result) *AvailableServicesResponse {
	resp := &AvailableServicesResponse{
		Mode:     string(r.Mode),
		Services: make([]AvailableService, 0, len(r.Items)),
	}
	if r.PackageID != "" {
		id := r.PackageID
		resp.PackageID = &id
	}
	if r.Warning != "" {
		w := r.Warning
		resp.Warning = &w
	}

	for _, item := range r.Items {
		svc := AvailableService{
			ServiceID:       item.ServiceID,
			Name:            item.Name,
			DurationMinutes: item.DurationMinutes,
			Price:           item.Price,
		}
		if item.PendingServiceID != "" {
			id := item.PendingServiceID
			svc.PendingServiceID = &id
		}
		if item.Sessions != nil {
			svc.Sessions = &SessionsLeft{
				Total: item.Sessions.Total,
				Used:  item.Sessions.Used,
				Left:  item.Sessions.Left,
			}
		}
		resp.Services = append(resp.Services, svc)
	}
	return resp
}
