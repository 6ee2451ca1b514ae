package domain

import "time"

// CompanySettings настройки салона, отображаемые клиентам (подарочные сертификаты, чеки)
type CompanySettings struct {
	ID        string
	LegalName string
	TradeName *string // NULL = использовать LegalName
	Phone     *string
	UpdatedAt time.Time
}

// DisplayName имя для отображения: торговое, иначе юридическое
func (c *CompanySettings) DisplayName() string {
	if c.TradeName != nil && *c.TradeName != "" {
		return *c.TradeName
	}
	return c.LegalName
}
