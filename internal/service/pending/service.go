package pending

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Service очередь услуг, которые салон должен клиенту вне пакетов
type Service struct {
	pendingRepo PendingRepository
	clientRepo  ClientRepository
	catalogRepo CatalogRepository
	degradation DegradationRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса очереди
// pendingRepo может быть nil: тогда используются переданный список и документ клиента
func NewService(
	pendingRepo PendingRepository,
	clientRepo ClientRepository,
	catalogRepo CatalogRepository,
	degradation DegradationRecorder,
	logger Logger,
) *Service {
	return &Service{
		pendingRepo: pendingRepo,
		clientRepo:  clientRepo,
		catalogRepo: catalogRepo,
		degradation: degradation,
		logger:      logger,
	}
}

// LoadPendingFor возвращает открытые долги клиента
//
// Источник выбирается по приоритету:
//  1. выделенное хранилище (client_id, status=pendente);
//  2. переданный список supplied, отфильтрованный по клиенту;
//  3. поле pending_services документа клиента.
//
// Ошибка чтения источника переводит на следующий, в худшем случае результат пустой.
func (s *Service) LoadPendingFor(ctx context.Context, clientID string, supplied []domain.PendingService) ([]domain.PendingService, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	raw, source, ok := s.fromRepository(ctx, clientID)
	if !ok {
		raw, source, ok = fromSupplied(clientID, supplied)
	}
	if !ok {
		raw, source = s.fromClient(ctx, clientID)
	}

	names := s.serviceNames(ctx)

	result := make([]domain.PendingService, 0, len(raw))
	for _, p := range raw {
		result = append(result, normalize(p, clientID, names))
	}

	s.logger.Info("LoadPendingFor: client=%s has %d pending services (source=%s)", clientID, len(result), source)
	return result, nil
}

// GetOpen ищет открытый долг клиента по ID
func (s *Service) GetOpen(ctx context.Context, clientID, pendingServiceID string) (*domain.PendingService, error) {
	items, err := s.LoadPendingFor(ctx, clientID, nil)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == pendingServiceID && items[i].IsOpen() {
			return &items[i], nil
		}
	}
	s.logger.Warn("GetOpen: pending service id=%s not found for client=%s", pendingServiceID, clientID)
	return nil, ErrPendingNotFound
}

func (s *Service) fromRepository(ctx context.Context, clientID string) ([]domain.PendingService, string, bool) {
	if s.pendingRepo == nil {
		return nil, "", false
	}

	items, err := s.pendingRepo.ListByClientAndStatus(ctx, clientID, domain.PendingOpen)
	if err != nil {
		s.logger.Error("LoadPendingFor: pending query failed for client=%s: %v", clientID, err)
		s.degradation.IncFetchDegradation("pending_services")
		return nil, "", false
	}

	result := make([]domain.PendingService, 0, len(items))
	for _, p := range items {
		if p != nil {
			result = append(result, *p)
		}
	}
	return result, "query", true
}

func fromSupplied(clientID string, supplied []domain.PendingService) ([]domain.PendingService, string, bool) {
	if supplied == nil {
		return nil, "", false
	}

	result := make([]domain.PendingService, 0, len(supplied))
	for _, p := range supplied {
		if p.ClientID == clientID && p.IsOpen() {
			result = append(result, p)
		}
	}
	return result, "supplied", true
}

func (s *Service) fromClient(ctx context.Context, clientID string) ([]domain.PendingService, string) {
	if s.clientRepo == nil {
		return []domain.PendingService{}, "none"
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		s.logger.Error("LoadPendingFor: failed to load client=%s: %v", clientID, err)
		s.degradation.IncFetchDegradation("clients")
		return []domain.PendingService{}, "none"
	}
	if client == nil {
		return []domain.PendingService{}, "none"
	}

	result := make([]domain.PendingService, 0, len(client.PendingServices))
	for _, p := range client.PendingServices {
		// В документе клиента статус может быть не заполнен: считаем такой долг открытым
		if p.Status == "" || p.IsOpen() {
			result = append(result, p)
		}
	}
	return result, "client"
}

// serviceNames имена услуг каталога; при ошибке каталога пустая карта
func (s *Service) serviceNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	if s.catalogRepo == nil {
		return names
	}

	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("LoadPendingFor: failed to load catalog: %v", err)
		s.degradation.IncFetchDegradation("services")
		return names
	}
	for _, svc := range services {
		names[svc.ID] = svc.Name
	}
	return names
}

// normalize заполняет id (иначе service_id), имя (иначе из каталога, иначе заглушка) и статус
func normalize(p domain.PendingService, clientID string, names map[string]string) domain.PendingService {
	if p.ID == "" {
		p.ID = p.ServiceID
	}
	if p.ClientID == "" {
		p.ClientID = clientID
	}
	if p.Status == "" {
		p.Status = domain.PendingOpen
	}
	if p.Name == "" {
		p.Name = names[p.ServiceID]
	}
	if p.Name == "" {
		p.Name = domain.PendingServicePlaceholderName
	}
	return p
}
