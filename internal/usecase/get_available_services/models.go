package get_available_services

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Request модель запроса услуг сотрудника
type Request struct {
	EmployeeID string
	Mode       domain.Provenance
	ClientID   string
	PackageID  string
}
