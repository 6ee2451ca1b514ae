package get_available_services

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/eligibility"
)

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
}

// EligibilityResolver список услуг, доступных сотруднику по источнику
type EligibilityResolver interface {
	AvailableServices(ctx context.Context, mode domain.Provenance, employee *domain.Employee, in eligibility.Context) (*eligibility.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
