package select_pending_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pending"
)

// UseCase use case выбора долга по услуге для записи
type UseCase struct {
	drafts  DraftStore
	pending PendingProvider
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(drafts DraftStore, pendingProvider PendingProvider, logger Logger) *UseCase {
	return &UseCase{
		drafts:  drafts,
		pending: pendingProvider,
		logger:  logger,
	}
}

// Execute заменяет все строки черновика одной строкой pendente
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectPendingService: draft=%s, pending_service=%s", req.DraftID, req.PendingServiceID)

	// 1. Черновик
	draft, err := uc.drafts.Get(req.DraftID)
	if err != nil {
		uc.logger.Warn("SelectPendingService: draft id=%s not found", req.DraftID)
		return nil, ErrDraftNotFound
	}

	// 2. Валидация
	clientID := req.ClientID
	if clientID == "" {
		clientID = draft.State().Selection.ClientID
	}
	if clientID == "" || req.PendingServiceID == "" {
		return nil, fmt.Errorf("%w: client and pending service are required", ErrInvalidInput)
	}

	// 3. Открытый долг клиента
	p, err := uc.pending.GetOpen(ctx, clientID, req.PendingServiceID)
	if err != nil {
		if errors.Is(err, pending.ErrPendingNotFound) {
			return nil, ErrPendingNotFound
		}
		uc.logger.Error("SelectPendingService: failed to load pending services of client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: failed to load pending services: %v", ErrInternal, err)
	}

	// 4. Черновик: режим pendente и одна строка
	draft.Select(lines.Selection{ClientID: clientID, Mode: domain.ProvenancePending})
	draft.SelectPendingService(*p)

	uc.logger.Info("SelectPendingService: draft=%s now books pending service=%s (service=%s)", draft.ID(), p.ID, p.ServiceID)
	return &Response{State: draft.State()}, nil
}
