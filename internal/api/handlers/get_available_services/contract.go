package get_available_services

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/eligibility/models"
	getAvailableServices "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_services"
)

type GetAvailableServicesUseCase interface {
	Execute(ctx context.Context, req *getAvailableServices.Request) (*models.AvailableServicesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
