package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек салона
// Все поля опциональны - обновляются только переданные значения
// Пустая строка в tradeName сбрасывает торговое имя
type UpdateSettingsRequest struct {
	LegalName *string `json:"legalName,omitempty"`
	TradeName *string `json:"tradeName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// SettingsResponse настройки салона
type SettingsResponse struct {
	ID          string    `json:"id"`
	LegalName   string    `json:"legalName"`
	TradeName   *string   `json:"tradeName,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	DisplayName string    `json:"displayName"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DisplayNameResponse отображаемое имя салона
type DisplayNameResponse struct {
	Name string `json:"name"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.CompanySettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		ID:          s.ID,
		LegalName:   s.LegalName,
		TradeName:   s.TradeName,
		Phone:       s.Phone,
		DisplayName: s.DisplayName(),
		UpdatedAt:   s.UpdatedAt,
	}
}
