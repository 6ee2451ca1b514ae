package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
)

// UseCase use case подтверждения мультизаписи
type UseCase struct {
	drafts   DraftStore
	packages PackageProvider
	creator  BookingCreator
	metrics  MetricsRecorder
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	drafts DraftStore,
	packageProvider PackageProvider,
	creator BookingCreator,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		drafts:   drafts,
		packages: packageProvider,
		creator:  creator,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute отправляет все строки черновика одним запросом
// После успешного создания черновик закрывается, если его не меняли во время подтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: draft=%s", req.DraftID)

	// 1. Черновик
	draft, err := uc.drafts.Get(req.DraftID)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: draft id=%s not found", req.DraftID)
		return nil, ErrDraftNotFound
	}
	state, err := draft.BeginConfirm()
	if err != nil {
		uc.logger.Warn("ConfirmBooking: draft=%s is already being confirmed", req.DraftID)
		return nil, ErrConfirmInProgress
	}

	// 2. Единственный активный пакет подставляется, если пакет не выбран явно
	implicitPackageID := uc.implicitPackage(ctx, state)

	// 3. Проверка формы, при ошибке ничего не отправляем
	if !IsFormValid(state, implicitPackageID) {
		uc.logger.Warn("ConfirmBooking: draft=%s is not valid (client=%q, mode=%q, lines=%d)",
			req.DraftID, state.Selection.ClientID, state.Selection.Mode, len(state.Lines))
		draft.AbortConfirm()
		return nil, ErrFormInvalid
	}

	// 4. Один вызов на все строки
	bookingReq := BuildRequest(state, implicitPackageID)
	created, err := uc.creator.CreateBatch(ctx, bookingReq)
	if err != nil {
		draft.AbortConfirm()
		return nil, uc.translateError(req.DraftID, err)
	}

	// 5. Черновик закрывается, правки сделанные во время подтверждения остаются в нем
	if draft.CompleteConfirm(state.Version) {
		if err := uc.drafts.Discard(req.DraftID); err != nil {
			uc.logger.Warn("ConfirmBooking: draft=%s already closed: %v", req.DraftID, err)
		}
	} else {
		uc.logger.Warn("ConfirmBooking: draft=%s changed during confirmation, kept open", req.DraftID)
	}
	uc.metrics.IncBookingsConfirmed(string(bookingReq.Mode), len(created))

	uc.logger.Info("ConfirmBooking: draft=%s confirmed, %d appointments created", req.DraftID, len(created))
	return toResponse(req.DraftID, bookingReq, created), nil
}

func (uc *UseCase) implicitPackage(ctx context.Context, state lines.State) string {
	sel := state.Selection
	if sel.Mode != domain.ProvenancePackage || sel.PackageID != "" || sel.ClientID == "" {
		return ""
	}

	active, err := uc.packages.ListActive(ctx, sel.ClientID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to list active packages of client=%s: %v", sel.ClientID, err)
		return ""
	}
	if len(active) != 1 {
		return ""
	}
	return active[0].ID
}

func (uc *UseCase) translateError(draftID string, err error) error {
	switch {
	case errors.Is(err, bookings.ErrSlotNotAvailable):
		uc.logger.Warn("ConfirmBooking: draft=%s rejected, slot not available: %v", draftID, err)
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, bookings.ErrNotEntitled),
		errors.Is(err, bookings.ErrPackageNotFound):
		uc.logger.Warn("ConfirmBooking: draft=%s rejected, package does not cover it: %v", draftID, err)
		return fmt.Errorf("%w: %v", ErrNotEntitled, err)
	case errors.Is(err, bookings.ErrEntitlementConflict):
		uc.logger.Warn("ConfirmBooking: draft=%s rejected, entitlement changed: %v", draftID, err)
		return ErrEntitlementConflict
	case errors.Is(err, bookings.ErrInvalidRequest),
		errors.Is(err, bookings.ErrEmployeeNotFound),
		errors.Is(err, bookings.ErrServiceNotFound):
		uc.logger.Warn("ConfirmBooking: draft=%s rejected: %v", draftID, err)
		return fmt.Errorf("%w: %v", ErrBookingRejected, err)
	default:
		uc.logger.Error("ConfirmBooking: failed to create appointments for draft=%s: %v", draftID, err)
		return fmt.Errorf("%w: failed to create appointments: %v", ErrInternal, err)
	}
}

func toResponse(draftID string, req domain.BookingRequest, created []*domain.Appointment) *Response {
	resp := &Response{
		DraftID:      draftID,
		ClientID:     req.ClientID,
		Mode:         string(req.Mode),
		PackageID:    req.PackageID,
		Appointments: make([]Appointment, 0, len(created)),
	}
	for _, a := range created {
		resp.Appointments = append(resp.Appointments, Appointment{
			ID:                    a.ID,
			ServiceID:             a.ServiceID,
			ServiceName:           a.ServiceName,
			EmployeeID:            a.EmployeeID,
			Provenance:            string(a.Provenance),
			Date:                  a.Date,
			StartTime:             a.StartTime,
			DurationMinutes:       a.DurationMinutes,
			Status:                string(a.Status),
			PendingServiceID:      a.PendingServiceID,
			OriginalAppointmentID: a.OriginalAppointmentID,
		})
	}
	return resp
}
