package start_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/internal/service/packages"
)

// UseCase use case начала переноса сессии пакета
type UseCase struct {
	drafts   DraftStore
	packages PackageProvider
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(drafts DraftStore, packageProvider PackageProvider, logger Logger) *UseCase {
	return &UseCase{
		drafts:   drafts,
		packages: packageProvider,
		logger:   logger,
	}
}

// Execute заменяет все строки черновика одной строкой переноса
// Уже заполненные строки теряются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("StartReschedule: draft=%s, package=%s, appointment=%s", req.DraftID, req.PackageID, req.AppointmentID)

	// 1. Черновик
	draft, err := uc.drafts.Get(req.DraftID)
	if err != nil {
		uc.logger.Warn("StartReschedule: draft id=%s not found", req.DraftID)
		return nil, ErrDraftNotFound
	}

	// 2. Валидация
	clientID := req.ClientID
	if clientID == "" {
		clientID = draft.State().Selection.ClientID
	}
	if clientID == "" || req.PackageID == "" || req.AppointmentID == "" {
		return nil, fmt.Errorf("%w: client, package and appointment are required", ErrInvalidInput)
	}

	// 3. Пакет клиента
	pkg, err := uc.packages.GetActive(ctx, clientID, req.PackageID)
	if err != nil {
		if errors.Is(err, packages.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("StartReschedule: failed to get package id=%s: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 4. Сессия из истории пакета
	session, ok := packages.FindSession(pkg, req.AppointmentID)
	if !ok {
		uc.logger.Warn("StartReschedule: package id=%s has no session for appointment=%s", pkg.ID, req.AppointmentID)
		return nil, ErrSessionNotFound
	}
	if session.IsConcluded() {
		return nil, ErrSessionConcluded
	}

	// 5. Черновик: режим pacote и одна строка переноса
	draft.Select(lines.Selection{ClientID: clientID, Mode: domain.ProvenancePackage, PackageID: pkg.ID})
	draft.StartReschedule(session)

	uc.logger.Info("StartReschedule: draft=%s now reschedules appointment=%s (service=%s, employee=%s)",
		draft.ID(), session.AppointmentID, session.ServiceID, session.EmployeeID)
	return &Response{State: draft.State()}, nil
}
