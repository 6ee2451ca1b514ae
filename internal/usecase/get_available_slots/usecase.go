package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	employeeRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/employee"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения слотов строки черновика
type UseCase struct {
	drafts          DraftStore
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	catalogRepo     CatalogRepository
	timeProvider    TimeProvider
	windowStart     types.TimeString
	windowEnd       types.TimeString
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	drafts DraftStore,
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		drafts:          drafts,
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		catalogRepo:     catalogRepo,
		timeProvider:    &RealTimeProvider{},
		windowStart:     types.MustTimeString(domain.SlotWindowStart),
		windowEnd:       types.MustTimeString(domain.SlotWindowEnd),
		logger:          logger,
	}
}

// WithSlotWindow задает окно записи [start, end)
func (uc *UseCase) WithSlotWindow(start, end types.TimeString) *UseCase {
	uc.windowStart = start
	uc.windowEnd = end
	return uc
}

// Execute выполняет use case получения слотов
// Слоты идут с шагом сотрудника в окне записи (по умолчанию 08:00-20:00), для каждого посчитаны конфликты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: draft=%s, line=%d", req.DraftID, req.LineIndex)

	// 1. Черновик и строка
	draft, err := uc.drafts.Get(req.DraftID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: draft id=%s not found", req.DraftID)
		return nil, ErrDraftNotFound
	}

	line, err := draft.Line(req.LineIndex)
	if err != nil {
		if errors.Is(err, lines.ErrLineIndexOutOfRange) {
			uc.logger.Warn("GetAvailableSlots: line %d not found in draft=%s", req.LineIndex, req.DraftID)
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("%w: failed to get line: %v", ErrInternal, err)
	}

	if line.EmployeeID == "" || line.Date == "" {
		uc.logger.Warn("GetAvailableSlots: line %d of draft=%s has no employee or date", req.LineIndex, req.DraftID)
		return nil, ErrLineIncomplete
	}

	// 2. Дата
	date, err := parseLineDate(line.Date, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Сотрудник
	employee, err := uc.employeeRepo.GetByID(ctx, line.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableSlots: employee id=%s not found", line.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get employee id=%s: %v", line.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 4. Длительность: услуга строки, иначе шаг сотрудника, иначе значение по умолчанию
	duration, err := uc.duration(ctx, line, employee)
	if err != nil {
		return nil, err
	}

	// 5. Существующие записи сотрудника на дату
	existing, err := uc.appointmentRepo.GetByEmployeeAndDate(ctx, domain.EmployeeAppointmentsFilter{
		EmployeeID: employee.ID,
		Date:       date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Слоты с количеством конфликтов
	computed := lines.SlotsWithConflictsInWindow(employee, uc.windowStart, uc.windowEnd, date, duration, existing)
	slots := make([]Slot, 0, len(computed))
	for _, s := range computed {
		slots = append(slots, Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			Conflicts:       s.Conflicts,
			Available:       s.IsFree(),
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for employee=%s, date=%s",
		len(slots), employee.ID, date.Format(domain.DateFormat))

	return &Response{
		DraftID:         req.DraftID,
		LineIndex:       req.LineIndex,
		EmployeeID:      employee.ID,
		Date:            date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) duration(ctx context.Context, line domain.DraftLine, employee *domain.Employee) (int, error) {
	if line.ServiceID != "" {
		service, err := uc.catalogRepo.GetService(ctx, line.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%s not found", line.ServiceID)
				return 0, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", line.ServiceID, err)
			return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.DurationMinutes > 0 {
			return service.DurationMinutes, nil
		}
	}
	if employee.HasAppointmentInterval() {
		return employee.AppointmentInterval, nil
	}
	return domain.DefaultAppointmentDurationMinutes, nil
}
