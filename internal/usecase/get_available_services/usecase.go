package get_available_services

import (
	"context"
	"errors"
	"fmt"

	employeeRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/employee"
	"github.com/m04kA/SMC-SalonBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-SalonBooking/internal/service/eligibility/models"
)

// UseCase use case списка услуг, которые сотрудник может выполнить
type UseCase struct {
	employeeRepo EmployeeRepository
	resolver     EligibilityResolver
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(employeeRepo EmployeeRepository, resolver EligibilityResolver, logger Logger) *UseCase {
	return &UseCase{
		employeeRepo: employeeRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

// Execute возвращает услуги для выбора в строке черновика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AvailableServicesResponse, error) {
	// 1. Валидация режима
	if !req.Mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}

	// 2. Сотрудник
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableServices: employee id=%s not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableServices: failed to get employee id=%s: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 3. Услуги по источнику
	result, err := uc.resolver.AvailableServices(ctx, req.Mode, employee, eligibility.Context{
		ClientID:  req.ClientID,
		PackageID: req.PackageID,
	})
	if err != nil {
		switch {
		case errors.Is(err, eligibility.ErrClientRequired):
			return nil, ErrClientRequired
		case errors.Is(err, eligibility.ErrPackageRequired):
			return nil, ErrPackageRequired
		case errors.Is(err, eligibility.ErrInvalidMode):
			return nil, ErrInvalidMode
		default:
			uc.logger.Error("GetAvailableServices: failed to resolve services for employee=%s: %v", req.EmployeeID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	if result.Warning != "" {
		uc.logger.Warn("GetAvailableServices: employee=%s, package=%s: %s", employee.ID, result.PackageID, result.Warning)
	}
	return models.FromResult(result), nil
}
