package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// GetAppointment возвращает запись по ID
func (s *Service) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetAppointment: failed to get appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetAppointment - repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

// CancelAppointment отменяет запись и освобождает время сотрудника
// История сессий пакета не меняется: статус сессии ведет внешняя логика завершения
func (s *Service) CancelAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	var appt *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.GetAppointment(txCtx, id)
		if err != nil {
			return err
		}

		if current.Status == domain.AppointmentConcluded || !current.IsActive() {
			s.logger.Warn("CancelAppointment: appointment id=%s has status=%s", id, current.Status)
			return ErrAppointmentNotCancellable
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.AppointmentCancelled); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: CancelAppointment - update status: %v", ErrInternal, err)
		}

		current.Status = domain.AppointmentCancelled
		appt = current
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) && !errors.Is(err, ErrAppointmentNotCancellable) {
			s.logger.Error("CancelAppointment: failed to cancel appointment id=%s: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("CancelAppointment: appointment id=%s cancelled", id)
	return appt, nil
}

// GetEmployeeAgenda записи сотрудника на дату, включая отмененные
func (s *Service) GetEmployeeAgenda(ctx context.Context, employeeID, date string) (*models.AgendaResponse, error) {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil || employeeID == "" {
		return nil, fmt.Errorf("%w: employee and date YYYY-MM-DD are required", ErrInvalidRequest)
	}

	items, err := s.appointmentRepo.GetByEmployeeAndDate(ctx, domain.EmployeeAppointmentsFilter{
		EmployeeID:      employeeID,
		Date:            day,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("GetEmployeeAgenda: failed to get appointments of employee=%s on %s: %v", employeeID, date, err)
		return nil, fmt.Errorf("%w: GetEmployeeAgenda - repository error: %v", ErrInternal, err)
	}

	return &models.AgendaResponse{
		EmployeeID:   employeeID,
		Date:         date,
		Appointments: models.FromDomainAppointments(items),
	}, nil
}
