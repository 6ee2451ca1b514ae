package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/clientpackage"
	"github.com/m04kA/SMC-SalonBooking/internal/service/packages"
)

// checkPackage проверяет, что пакет клиента покрывает строки запроса
// Возвращает длину истории пакета на момент проверки: запись истории выполнится только при той же длине
func (s *Service) checkPackage(ctx context.Context, req domain.BookingRequest, prepared []preparedLine) (int, error) {
	if req.Mode != domain.ProvenancePackage || req.PackageID == nil {
		return 0, nil
	}
	packageID := *req.PackageID

	// 1. Пакет строгим чтением
	raw, err := s.packageStore.GetByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, clientpackage.ErrPackageNotFound) {
			s.logger.Warn("CreateBatch: package id=%s not found", packageID)
			return 0, fmt.Errorf("%w: %s", ErrPackageNotFound, packageID)
		}
		s.logger.Error("CreateBatch: failed to get package id=%s: %v", packageID, err)
		return 0, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if raw.ClientID != req.ClientID {
		s.logger.Warn("CreateBatch: package id=%s belongs to client=%s, requested by client=%s", packageID, raw.ClientID, req.ClientID)
		return 0, fmt.Errorf("%w: %s", ErrPackageNotFound, packageID)
	}
	if !raw.IsActive() {
		s.logger.Warn("CreateBatch: package id=%s has status=%s", packageID, raw.Status)
		return 0, fmt.Errorf("%w: package %s is %s", ErrNotEntitled, packageID, raw.Status)
	}

	// 2. Состав пакета; шаблоны каталога нужны только пакетам без snapshot
	var templates []*domain.PackageTemplate
	if raw.Snapshot == nil && raw.PackageID != "" {
		templates, err = s.catalogRepo.ListPackageTemplates(ctx)
		if err != nil {
			s.logger.Error("CreateBatch: failed to load package templates: %v", err)
			return 0, fmt.Errorf("%w: failed to load package templates: %v", ErrInternal, err)
		}
	}
	pkg := packages.Normalize(raw, templates)

	// 3. Новая строка занимает кредит услуги, перенос запланированной сессии кредит не меняет
	needed := make(map[string]int)
	requestedAs := make(map[string]string)
	rescheduled := make(map[string]bool)
	for i, pl := range prepared {
		ref, ok := pkg.Services.Find(pl.service.ID)
		if !ok {
			s.logger.Warn("CreateBatch: service id=%s is not in package id=%s", pl.service.ID, packageID)
			return 0, fmt.Errorf("%w: line %d service %s is not in package %s", ErrNotEntitled, i, pl.service.ID, packageID)
		}

		if original := pl.line.OriginalAppointmentID; original != "" {
			session, open := packages.OpenSession(pkg, original)
			sameService := session.ServiceID == pl.service.ID || ref.Matches(session.ServiceID)
			if !open || !sameService || rescheduled[original] {
				s.logger.Warn("CreateBatch: line %d cannot reschedule session of appointment=%s in package id=%s", i, original, packageID)
				return 0, fmt.Errorf("%w: line %d cannot reschedule appointment %s", ErrNotEntitled, i, original)
			}
			rescheduled[original] = true
			if session.Status == domain.SessionScheduled {
				continue
			}
		}

		needed[ref.ServiceID]++
		requestedAs[ref.ServiceID] = pl.service.ID
	}

	for key, n := range needed {
		left, _ := packages.BookableSessions(pkg, requestedAs[key])
		if n > left {
			s.logger.Warn("CreateBatch: package id=%s has %d sessions of service=%s left, %d requested", packageID, left, key, n)
			return 0, fmt.Errorf("%w: service %s has %d sessions left, %d requested", ErrNotEntitled, key, left, n)
		}
	}

	return len(raw.SessionHistory), nil
}
