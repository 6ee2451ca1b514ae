package eligibility

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/packages"
)

// Context данные, от которых зависит список услуг
type Context struct {
	ClientID  string
	PackageID string
	// Pending заранее загруженные долги клиента (необязательно)
	Pending []domain.PendingService
}

// Item услуга, доступная для записи
type Item struct {
	ServiceID        string
	Name             string
	DurationMinutes  int
	Price            float64
	PendingServiceID string
	// Sessions остаток по пакету, nil вне режима pacote или без истории
	Sessions *packages.Sessions
}

// Result список доступных услуг
// Warning заполняется, если у персонализированного пакета не осталось услуг для сотрудника
type Result struct {
	Mode      domain.Provenance
	PackageID string
	Items     []Item
	Warning   string
}

// Service определяет, какие услуги сотрудник может выполнить по выбранному источнику
type Service struct {
	catalogRepo CatalogRepository
	packages    PackageProvider
	pending     PendingProvider
	degradation DegradationRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности услуг
func NewService(
	catalogRepo CatalogRepository,
	packageProvider PackageProvider,
	pendingProvider PendingProvider,
	degradation DegradationRecorder,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		packages:    packageProvider,
		pending:     pendingProvider,
		degradation: degradation,
		logger:      logger,
	}
}

// AvailableServices возвращает услуги, доступные сотруднику в режиме mode
//
// avulso: весь каталог без фильтра по специализации сотрудника.
// pacote: услуги пакета, найденные в каталоге, с ненулевым остатком;
// для персонализированного пакета только специализации сотрудника.
// pendente: открытые долги клиента.
func (s *Service) AvailableServices(ctx context.Context, mode domain.Provenance, employee *domain.Employee, in Context) (*Result, error) {
	switch mode {
	case domain.ProvenanceAdHoc:
		return s.adHoc(ctx), nil
	case domain.ProvenancePackage:
		return s.fromPackage(ctx, employee, in)
	case domain.ProvenancePending:
		return s.fromPending(ctx, in)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// ResolvePackage выбранный пакет клиента или единственный активный, если пакет не выбран
func (s *Service) ResolvePackage(ctx context.Context, clientID, packageID string) (*domain.CanonicalPackage, error) {
	if clientID == "" {
		return nil, ErrClientRequired
	}

	pkgs, err := s.packages.ListActive(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolvePackage - list packages: %v", ErrInternal, err)
	}

	if packageID == "" {
		if len(pkgs) == 1 {
			return pkgs[0], nil
		}
		return nil, ErrPackageRequired
	}

	for _, pkg := range pkgs {
		if pkg.ID == packageID {
			return pkg, nil
		}
	}
	return nil, nil
}

func (s *Service) adHoc(ctx context.Context) *Result {
	catalog := s.loadCatalog(ctx)

	items := make([]Item, 0, len(catalog))
	for _, svc := range catalog {
		items = append(items, itemFromService(svc))
	}

	s.logger.Info("AvailableServices: avulso mode, %d catalog services", len(items))
	return &Result{Mode: domain.ProvenanceAdHoc, Items: items}
}

func (s *Service) fromPackage(ctx context.Context, employee *domain.Employee, in Context) (*Result, error) {
	pkg, err := s.ResolvePackage(ctx, in.ClientID, in.PackageID)
	if err != nil {
		return nil, err
	}

	result := &Result{Mode: domain.ProvenancePackage, PackageID: in.PackageID, Items: []Item{}}
	if pkg == nil {
		s.logger.Warn("AvailableServices: package id=%s not found among active packages of client=%s", in.PackageID, in.ClientID)
		return result, nil
	}
	result.PackageID = pkg.ID

	catalog := s.loadCatalog(ctx)
	byID := make(map[string]*domain.Service, len(catalog))
	for _, svc := range catalog {
		byID[svc.ID] = svc
	}

	seen := make(map[string]struct{}, len(pkg.Services))
	for _, ref := range pkg.Services {
		// 1. Поиск в каталоге по service_id, затем по собственному id записи
		svc, ok := byID[ref.ServiceID]
		if !ok && ref.AliasID != "" {
			svc, ok = byID[ref.AliasID]
		}
		if !ok {
			s.logger.Warn("AvailableServices: package=%s references unknown service=%s, skipped", pkg.ID, ref.ServiceID)
			continue
		}
		if _, dup := seen[svc.ID]; dup {
			continue
		}

		// 2. Персонализированный пакет: только специализации сотрудника
		if pkg.IsCustom() && (employee == nil || !employee.HasSpecialty(svc.ID)) {
			continue
		}

		// 3. Исчерпанные услуги не предлагаются
		item := itemFromService(svc)
		if sessions, ok := packages.SessionsFor(pkg, svc.ID); ok {
			if sessions.Left == 0 {
				continue
			}
			item.Sessions = &sessions
		}

		seen[svc.ID] = struct{}{}
		result.Items = append(result.Items, item)
	}

	if pkg.IsCustom() && len(result.Items) == 0 {
		result.Warning = domain.EmptyCustomPackageWarning
	}

	s.logger.Info("AvailableServices: pacote mode, package=%s, %d of %d services available",
		pkg.ID, len(result.Items), len(pkg.Services))
	return result, nil
}

func (s *Service) fromPending(ctx context.Context, in Context) (*Result, error) {
	if in.ClientID == "" {
		return nil, ErrClientRequired
	}

	queue, err := s.pending.LoadPendingFor(ctx, in.ClientID, in.Pending)
	if err != nil {
		return nil, fmt.Errorf("%w: fromPending - load queue: %v", ErrInternal, err)
	}

	catalog := s.loadCatalog(ctx)
	byID := make(map[string]*domain.Service, len(catalog))
	for _, svc := range catalog {
		byID[svc.ID] = svc
	}

	items := make([]Item, 0, len(queue))
	for _, p := range queue {
		item := Item{ServiceID: p.ServiceID, Name: p.Name, PendingServiceID: p.ID}
		if svc, ok := byID[p.ServiceID]; ok {
			item.DurationMinutes = svc.DurationMinutes
			if item.Name == "" {
				item.Name = svc.Name
			}
		}
		if item.Name == "" {
			item.Name = domain.PendingServicePlaceholderName
		}
		items = append(items, item)
	}

	s.logger.Info("AvailableServices: pendente mode, client=%s, %d pending services", in.ClientID, len(items))
	return &Result{Mode: domain.ProvenancePending, Items: items}, nil
}

// loadCatalog при ошибке возвращает пустой каталог
func (s *Service) loadCatalog(ctx context.Context) []*domain.Service {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("AvailableServices: failed to load catalog: %v", err)
		s.degradation.IncFetchDegradation("services")
		return nil
	}
	return services
}

func itemFromService(svc *domain.Service) Item {
	return Item{
		ServiceID:       svc.ID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
	}
}
