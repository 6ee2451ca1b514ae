package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// PackageListResponse список активных пакетов клиента
type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
}

// PackageResponse пакет в нормализованном виде
type PackageResponse struct {
	ID             string            `json:"id"`
	PackageID      *string           `json:"packageId"`
	Name           string            `json:"name"`
	Source         string            `json:"source"` // snapshot | template | raw
	Custom         bool              `json:"custom"`
	Status         string            `json:"status"`
	ExpirationDate *string           `json:"expirationDate,omitempty"`
	Services       []ServiceResponse `json:"services"`
	Reschedulable  []SessionResponse `json:"reschedulableSessions"`
}

// ServiceResponse услуга пакета
type ServiceResponse struct {
	ServiceID string          `json:"serviceId"`
	AliasID   string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Ledger    *LedgerResponse `json:"sessions,omitempty"`
}

// LedgerResponse остаток сессий
type LedgerResponse struct {
	Total int `json:"total"`
	Used  int `json:"used"`
	Left  int `json:"left"`
}

// SessionResponse сессия из истории пакета
type SessionResponse struct {
	ServiceID             string `json:"serviceId"`
	EmployeeID            string `json:"employeeId"`
	Date                  string `json:"date"`
	Time                  string `json:"time"`
	Status                string `json:"status"`
	AppointmentID         string `json:"appointmentId"`
	OriginalAppointmentID string `json:"originalAppointmentId,omitempty"`
}

// SessionsResponse сессии одной услуги пакета
// Ledger = nil, если у пакета нет истории или списка услуг
type SessionsResponse struct {
	PackageID     string            `json:"packageId"`
	ServiceID     string            `json:"serviceId,omitempty"`
	Ledger        *LedgerResponse   `json:"sessions"`
	Reschedulable []SessionResponse `json:"reschedulableSessions"`
}

// FromDomainPackage конвертирует пакет без расчета остатков
func FromDomainPackage(pkg *domain.CanonicalPackage) PackageResponse {
	resp := PackageResponse{
		ID:       pkg.ID,
		Name:     pkg.Name,
		Source:   string(pkg.Tier),
		Custom:   pkg.IsCustom(),
		Status:   string(pkg.Status),
		Services: make([]ServiceResponse, 0, len(pkg.Services)),
	}
	if pkg.PackageID != "" {
		id := pkg.PackageID
		resp.PackageID = &id
	}
	if pkg.ExpirationDate != nil {
		exp := pkg.ExpirationDate.Format(time.RFC3339)
		resp.ExpirationDate = &exp
	}
	for _, ref := range pkg.Services {
		resp.Services = append(resp.Services, ServiceResponse{
			ServiceID: ref.ServiceID,
			AliasID:   ref.AliasID,
			Name:      ref.Name,
			Quantity:  ref.Count(),
		})
	}
	return resp
}

// FromDomainSessions конвертирует записи истории
func FromDomainSessions(entries []domain.SessionHistoryEntry) []SessionResponse {
	result := make([]SessionResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, SessionResponse{
			ServiceID:             e.ServiceID,
			EmployeeID:            e.EmployeeID,
			Date:                  e.Date,
			Time:                  e.Time,
			Status:                string(e.Status),
			AppointmentID:         e.AppointmentID,
			OriginalAppointmentID: e.OriginalAppointmentID,
		})
	}
	return result
}
