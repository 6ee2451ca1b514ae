package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	employeeRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/employee"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	pkgTypes "github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service создает записи пачкой: N записей, история сессий пакета и списание долгов
// либо применяются вместе, либо не применяются
type Service struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	catalogRepo     CatalogRepository
	packageStore    PackageStore
	pendingServices PendingServiceWriter
	documents       DocumentTransactor
	txManager       TransactionManager
	newID           func() string
	logger          Logger
}

// NewService создает новый экземпляр сервиса записи
// pendingServices может быть nil: тогда долги по услугам не списываются
func NewService(
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeRepository,
	catalogRepo CatalogRepository,
	packageStore PackageStore,
	pendingServices PendingServiceWriter,
	documents DocumentTransactor,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		catalogRepo:     catalogRepo,
		packageStore:    packageStore,
		pendingServices: pendingServices,
		documents:       documents,
		txManager:       txManager,
		newID:           uuid.NewString,
		logger:          logger,
	}
}

// preparedLine строка запроса вместе с загруженными сотрудником и услугой
type preparedLine struct {
	line     domain.DraftLine
	date     time.Time
	start    pkgTypes.TimeString
	employee *domain.Employee
	service  *domain.Service
	duration int
}

// CreateBatch создает записи по всем строкам запроса
func (s *Service) CreateBatch(ctx context.Context, req domain.BookingRequest) ([]*domain.Appointment, error) {
	s.logger.Info("CreateBatch: client=%s, mode=%s, lines=%d", req.ClientID, req.Mode, len(req.Agendamentos))

	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		s.logger.Warn("CreateBatch: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем сотрудников и услуги строк
	prepared, err := s.prepareLines(ctx, req.Agendamentos)
	if err != nil {
		return nil, err
	}

	// 3. Пакет покрывает все строки и сессий хватает
	historyLen, err := s.checkPackage(ctx, req, prepared)
	if err != nil {
		return nil, err
	}

	// 4. Долги, которые можно списать в выделенном хранилище
	consumable := s.consumablePending(ctx, req)

	var created []*domain.Appointment

	// 5. Записи создаются в сериализуемой транзакции, документы пишутся до её коммита
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = make([]*domain.Appointment, 0, len(prepared))
		existingByKey := make(map[string][]*domain.Appointment)

		for i, pl := range prepared {
			// 5.1. Существующие записи сотрудника на дату с блокировкой (FOR UPDATE)
			key := pl.employee.ID + "|" + pl.line.Date
			existing, ok := existingByKey[key]
			if !ok {
				existing, err = s.appointmentRepo.GetByEmployeeAndDate(txCtx, domain.EmployeeAppointmentsFilter{
					EmployeeID: pl.employee.ID,
					Date:       pl.date,
				})
				if err != nil {
					s.logger.Error("CreateBatch: failed to get appointments of employee=%s on %s: %v", pl.employee.ID, pl.line.Date, err)
					return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
				}
			}

			// 5.2. Пересечения считаются и с записями, созданными этой же пачкой
			conflicts := lines.CountConflicts(pl.employee.ID, pl.date, pl.start, pl.duration, existing)
			if conflicts > 0 {
				s.logger.Warn("CreateBatch: line %d conflicts with %d appointments of employee=%s at %s %s",
					i, conflicts, pl.employee.ID, pl.line.Date, pl.line.Time)
				return fmt.Errorf("%w: line %d at %s %s", ErrSlotNotAvailable, i, pl.line.Date, pl.line.Time)
			}

			// 5.3. Сохраняем запись
			appt, err := s.appointmentRepo.Create(txCtx, s.buildAppointment(req, pl))
			if err != nil {
				s.logger.Error("CreateBatch: failed to create appointment for line %d: %v", i, err)
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			existingByKey[key] = append(existing, appt)
			created = append(created, appt)
		}

		// 5.4. История пакета и списание долгов одной транзакцией документного хранилища
		return s.writeEntitlements(txCtx, req, historyLen, created, consumable)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateBatch: successfully created %d appointments for client=%s", len(created), req.ClientID)
	return created, nil
}

func (s *Service) prepareLines(ctx context.Context, reqLines []domain.DraftLine) ([]preparedLine, error) {
	employees := make(map[string]*domain.Employee)
	services := make(map[string]*domain.Service)

	result := make([]preparedLine, 0, len(reqLines))
	for i, line := range reqLines {
		date, err := time.Parse(domain.DateFormat, line.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has invalid date %q", ErrInvalidRequest, i, line.Date)
		}
		start, err := pkgTypes.NewTimeStringFromString(line.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has invalid time %q", ErrInvalidRequest, i, line.Time)
		}

		employee, ok := employees[line.EmployeeID]
		if !ok {
			employee, err = s.employeeRepo.GetByID(ctx, line.EmployeeID)
			if err != nil {
				if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
					s.logger.Warn("CreateBatch: employee id=%s not found", line.EmployeeID)
					return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, line.EmployeeID)
				}
				s.logger.Error("CreateBatch: failed to get employee id=%s: %v", line.EmployeeID, err)
				return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
			}
			employees[line.EmployeeID] = employee
		}

		service, ok := services[line.ServiceID]
		if !ok {
			service, err = s.catalogRepo.GetService(ctx, line.ServiceID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrServiceNotFound) {
					s.logger.Warn("CreateBatch: service id=%s not found", line.ServiceID)
					return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, line.ServiceID)
				}
				s.logger.Error("CreateBatch: failed to get service id=%s: %v", line.ServiceID, err)
				return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
			}
			services[line.ServiceID] = service
		}

		pl := preparedLine{
			line:     line,
			date:     date,
			start:    start,
			employee: employee,
			service:  service,
			duration: appointmentDuration(employee, service),
		}

		// Запись должна закончиться в тот же день
		if _, err := start.AddMinutes(pl.duration); err != nil {
			return nil, fmt.Errorf("%w: line %d ends after midnight", ErrInvalidRequest, i)
		}

		result = append(result, pl)
	}
	return result, nil
}

// consumablePending ID долгов клиента из выделенного хранилища
// Долги из документа клиента (старая форма) только читаются, их не списываем
func (s *Service) consumablePending(ctx context.Context, req domain.BookingRequest) map[string]bool {
	result := make(map[string]bool)
	if s.pendingServices == nil {
		return result
	}

	hasPending := false
	for _, line := range req.Agendamentos {
		if line.PendingServiceID != "" {
			hasPending = true
			break
		}
	}
	if !hasPending {
		return result
	}

	open, err := s.pendingServices.ListByClientAndStatus(ctx, req.ClientID, domain.PendingOpen)
	if err != nil {
		s.logger.Error("CreateBatch: failed to list pending services of client=%s, nothing will be consumed: %v", req.ClientID, err)
		return result
	}
	for _, p := range open {
		if p != nil && p.ID != "" {
			result[p.ID] = true
		}
	}
	return result
}

func (s *Service) buildAppointment(req domain.BookingRequest, pl preparedLine) *domain.Appointment {
	appt := &domain.Appointment{
		ID:              s.newID(),
		ClientID:        req.ClientID,
		EmployeeID:      pl.employee.ID,
		ServiceID:       pl.service.ID,
		Provenance:      pl.line.Provenance,
		Date:            pl.date,
		StartTime:       pl.start,
		DurationMinutes: pl.duration,
		Status:          domain.AppointmentScheduled,
		ServiceName:     pl.service.Name,
	}

	if req.Mode == domain.ProvenancePackage && req.PackageID != nil {
		appt.PackageID = ptr.Ptr(*req.PackageID)
	}
	if pl.line.PendingServiceID != "" {
		appt.PendingServiceID = ptr.Ptr(pl.line.PendingServiceID)
	}
	if pl.line.OriginalAppointmentID != "" {
		appt.OriginalAppointmentID = ptr.Ptr(pl.line.OriginalAppointmentID)
	}
	return appt
}

func (s *Service) writeEntitlements(
	ctx context.Context,
	req domain.BookingRequest,
	historyLen int,
	created []*domain.Appointment,
	consumable map[string]bool,
) error {
	items := make([]types.TransactWriteItem, 0, 1+len(created))

	if req.Mode == domain.ProvenancePackage && req.PackageID != nil {
		entries := make([]domain.SessionHistoryEntry, 0, len(created))
		for _, appt := range created {
			entry := domain.SessionHistoryEntry{
				ServiceID:     appt.ServiceID,
				EmployeeID:    appt.EmployeeID,
				Date:          appt.Date.Format(domain.DateFormat),
				Time:          appt.StartTime.String(),
				Status:        domain.SessionScheduled,
				AppointmentID: appt.ID,
			}
			if appt.OriginalAppointmentID != nil {
				entry.OriginalAppointmentID = *appt.OriginalAppointmentID
			}
			entries = append(entries, entry)
		}

		item, err := s.packageStore.AppendHistoryItem(*req.PackageID, historyLen, entries)
		if err != nil {
			s.logger.Error("CreateBatch: failed to build history item for package=%s: %v", *req.PackageID, err)
			return fmt.Errorf("%w: failed to build history item: %v", ErrInternal, err)
		}
		items = append(items, item)
	}

	for _, appt := range created {
		if appt.PendingServiceID == nil {
			continue
		}
		if !consumable[*appt.PendingServiceID] {
			s.logger.Warn("CreateBatch: pending service id=%s is not in the pending store, left as is", *appt.PendingServiceID)
			continue
		}
		items = append(items, s.pendingServices.MarkScheduledItem(*appt.PendingServiceID, appt.ID))
	}

	if len(items) == 0 {
		return nil
	}

	_, err := s.documents.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			s.logger.Warn("CreateBatch: document transaction cancelled for client=%s: %v", req.ClientID, err)
			return ErrEntitlementConflict
		}
		s.logger.Error("CreateBatch: document transaction failed for client=%s: %v", req.ClientID, err)
		return fmt.Errorf("%w: document transaction failed: %v", ErrInternal, err)
	}
	return nil
}

// appointmentDuration длительность услуги, иначе шаг сетки сотрудника, иначе значение по умолчанию
func appointmentDuration(employee *domain.Employee, service *domain.Service) int {
	if service.DurationMinutes > 0 {
		return service.DurationMinutes
	}
	if employee.HasAppointmentInterval() {
		return employee.AppointmentInterval
	}
	return domain.DefaultAppointmentDurationMinutes
}

func validateRequest(req domain.BookingRequest) error {
	if req.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrInvalidRequest)
	}
	if !req.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, req.Mode)
	}
	if req.Mode == domain.ProvenancePackage && (req.PackageID == nil || *req.PackageID == "") {
		return fmt.Errorf("%w: package_id is required for mode %s", ErrInvalidRequest, req.Mode)
	}
	if req.Mode != domain.ProvenancePackage && req.PackageID != nil {
		return fmt.Errorf("%w: package_id is only allowed for mode %s", ErrInvalidRequest, domain.ProvenancePackage)
	}
	if len(req.Agendamentos) == 0 {
		return fmt.Errorf("%w: at least one line is required", ErrInvalidRequest)
	}
	if len(req.Agendamentos) > domain.MaxDraftLines {
		return fmt.Errorf("%w: too many lines", ErrInvalidRequest)
	}
	for i := range req.Agendamentos {
		if !req.Agendamentos[i].IsComplete() {
			return fmt.Errorf("%w: line %d is incomplete", ErrInvalidRequest, i)
		}
	}
	return nil
}
