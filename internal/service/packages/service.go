package packages

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/packages/models"
)

// Service чтение активных пакетов клиента в нормализованном виде
type Service struct {
	packageRepo PackageRepository
	catalogRepo CatalogRepository
	degradation DegradationRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса пакетов
func NewService(
	packageRepo PackageRepository,
	catalogRepo CatalogRepository,
	degradation DegradationRecorder,
	logger Logger,
) *Service {
	return &Service{
		packageRepo: packageRepo,
		catalogRepo: catalogRepo,
		degradation: degradation,
		logger:      logger,
	}
}

// ListActive возвращает активные пакеты клиента
// Ошибка чтения хранилища не прерывает процесс записи: результат пустой, ошибка в логе
func (s *Service) ListActive(ctx context.Context, clientID string) ([]*domain.CanonicalPackage, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	raws, err := s.packageRepo.ListByClientAndStatus(ctx, clientID, domain.PackageActive)
	if err != nil {
		s.logger.Error("ListActive: failed to load packages for client=%s: %v", clientID, err)
		s.degradation.IncFetchDegradation("client_packages")
		return []*domain.CanonicalPackage{}, nil
	}

	// Без шаблонов нормализация опустится на уровень услуг документа
	templates, err := s.catalogRepo.ListPackageTemplates(ctx)
	if err != nil {
		s.logger.Error("ListActive: failed to load package templates: %v", err)
		s.degradation.IncFetchDegradation("package_templates")
		templates = nil
	}

	result := make([]*domain.CanonicalPackage, 0, len(raws))
	for _, raw := range raws {
		result = append(result, Normalize(raw, templates))
	}

	s.logger.Info("ListActive: client=%s has %d active packages", clientID, len(result))
	return result, nil
}

// GetActive возвращает один активный пакет клиента
func (s *Service) GetActive(ctx context.Context, clientID, packageID string) (*domain.CanonicalPackage, error) {
	if packageID == "" {
		return nil, fmt.Errorf("%w: packageID is required", ErrInvalidInput)
	}

	pkgs, err := s.ListActive(ctx, clientID)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		if pkg.ID == packageID {
			return pkg, nil
		}
	}

	s.logger.Warn("GetActive: package id=%s not found among active packages of client=%s", packageID, clientID)
	return nil, ErrPackageNotFound
}

// ListActiveWithLedger активные пакеты с остатками по каждой услуге
func (s *Service) ListActiveWithLedger(ctx context.Context, clientID string) (*models.PackageListResponse, error) {
	pkgs, err := s.ListActive(ctx, clientID)
	if err != nil {
		return nil, err
	}

	resp := &models.PackageListResponse{Packages: make([]models.PackageResponse, 0, len(pkgs))}
	for _, pkg := range pkgs {
		resp.Packages = append(resp.Packages, toPackageResponse(pkg))
	}
	return resp, nil
}

// GetSessions остаток и переносимые сессии одной услуги пакета
// Пустой serviceID возвращает все переносимые сессии пакета
func (s *Service) GetSessions(ctx context.Context, clientID, packageID, serviceID string) (*models.SessionsResponse, error) {
	pkg, err := s.GetActive(ctx, clientID, packageID)
	if err != nil {
		return nil, err
	}

	resp := &models.SessionsResponse{
		PackageID: pkg.ID,
		ServiceID: serviceID,
	}

	if serviceID == "" {
		resp.Reschedulable = models.FromDomainSessions(AllReschedulableSessions(pkg))
		return resp, nil
	}

	if sessions, ok := SessionsFor(pkg, serviceID); ok {
		resp.Ledger = &models.LedgerResponse{Total: sessions.Total, Used: sessions.Used, Left: sessions.Left}
	}
	resp.Reschedulable = models.FromDomainSessions(ReschedulableSessions(pkg, serviceID))
	return resp, nil
}

func toPackageResponse(pkg *domain.CanonicalPackage) models.PackageResponse {
	resp := models.FromDomainPackage(pkg)
	for i, ref := range pkg.Services {
		if sessions, ok := SessionsFor(pkg, ref.ServiceID); ok {
			resp.Services[i].Ledger = &models.LedgerResponse{
				Total: sessions.Total,
				Used:  sessions.Used,
				Left:  sessions.Left,
			}
		}
	}
	resp.Reschedulable = models.FromDomainSessions(AllReschedulableSessions(pkg))
	return resp
}
