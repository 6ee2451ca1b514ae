package pending

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubPendingRepo struct {
	items []*domain.PendingService
	err   error
	calls int
}

func (s *stubPendingRepo) ListByClientAndStatus(_ context.Context, clientID string, status domain.PendingServiceStatus) ([]*domain.PendingService, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	result := make([]*domain.PendingService, 0)
	for _, p := range s.items {
		if p.ClientID == clientID && p.Status == status {
			result = append(result, p)
		}
	}
	return result, nil
}

type stubClientRepo struct {
	client *domain.Client
	err    error
}

func (s *stubClientRepo) GetByID(context.Context, string) (*domain.Client, error) {
	return s.client, s.err
}

type stubCatalogRepo struct {
	services []*domain.Service
	err      error
}

func (s *stubCatalogRepo) ListServices(context.Context) ([]*domain.Service, error) {
	return s.services, s.err
}

type nopRecorder struct{ sources []string }

func (n *nopRecorder) IncFetchDegradation(source string) { n.sources = append(n.sources, source) }

func catalog() *stubCatalogRepo {
	return &stubCatalogRepo{services: []*domain.Service{
		{ID: "svc1", Name: "Limpeza de pele"},
		{ID: "svc2", Name: "Escova"},
	}}
}

func TestLoadPendingFor_Precedence(t *testing.T) {
	ctx := context.Background()

	t.Run("выделенный запрос важнее остальных источников", func(t *testing.T) {
		repo := &stubPendingRepo{items: []*domain.PendingService{
			{ID: "p1", ClientID: "c1", ServiceID: "svc1", Status: domain.PendingOpen},
			{ID: "p2", ClientID: "c1", ServiceID: "svc2", Status: domain.PendingScheduled},
		}}
		clients := &stubClientRepo{client: &domain.Client{ID: "c1", PendingServices: []domain.PendingService{{ServiceID: "svc2"}}}}
		svc := NewService(repo, clients, catalog(), &nopRecorder{}, logger.NewNop())

		got, err := svc.LoadPendingFor(ctx, "c1", []domain.PendingService{{ID: "s1", ClientID: "c1", Status: domain.PendingOpen}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "Limpeza de pele", got[0].Name)
	})

	t.Run("без выделенного хранилища: переданный список по клиенту", func(t *testing.T) {
		svc := NewService(nil, &stubClientRepo{err: errors.New("unused")}, catalog(), &nopRecorder{}, logger.NewNop())

		got, err := svc.LoadPendingFor(ctx, "c1", []domain.PendingService{
			{ID: "s1", ClientID: "c1", ServiceID: "svc2", Status: domain.PendingOpen},
			{ID: "s2", ClientID: "c2", ServiceID: "svc2", Status: domain.PendingOpen},
			{ID: "s3", ClientID: "c1", ServiceID: "svc2", Status: domain.PendingScheduled},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "s1", got[0].ID)
		assert.Equal(t, "Escova", got[0].Name)
	})

	t.Run("без запроса и списка: документ клиента", func(t *testing.T) {
		clients := &stubClientRepo{client: &domain.Client{ID: "c1", PendingServices: []domain.PendingService{
			{ServiceID: "svc1"},
			{ServiceID: "svc-unknown", Name: "Retoque"},
			{ServiceID: "svc-gone"},
		}}}
		svc := NewService(nil, clients, catalog(), &nopRecorder{}, logger.NewNop())

		got, err := svc.LoadPendingFor(ctx, "c1", nil)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "svc1", got[0].ID)
		assert.Equal(t, "Limpeza de pele", got[0].Name)
		assert.Equal(t, "c1", got[0].ClientID)
		assert.Equal(t, domain.PendingOpen, got[0].Status)

		assert.Equal(t, "Retoque", got[1].Name)
		assert.Equal(t, domain.PendingServicePlaceholderName, got[2].Name)
	})

	t.Run("ошибка запроса переводит на следующий источник", func(t *testing.T) {
		rec := &nopRecorder{}
		repo := &stubPendingRepo{err: errors.New("throttled")}
		svc := NewService(repo, &stubClientRepo{}, catalog(), rec, logger.NewNop())

		got, err := svc.LoadPendingFor(ctx, "c1", []domain.PendingService{
			{ID: "s1", ClientID: "c1", ServiceID: "svc1", Status: domain.PendingOpen},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "s1", got[0].ID)
		assert.Equal(t, []string{"pending_services"}, rec.sources)
	})

	t.Run("все источники недоступны: пустой список", func(t *testing.T) {
		rec := &nopRecorder{}
		svc := NewService(
			&stubPendingRepo{err: errors.New("down")},
			&stubClientRepo{err: errors.New("down")},
			&stubCatalogRepo{err: errors.New("down")},
			rec,
			logger.NewNop(),
		)

		got, err := svc.LoadPendingFor(ctx, "c1", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.ElementsMatch(t, []string{"pending_services", "clients", "services"}, rec.sources)
	})
}

func TestLoadPendingFor_EmptyClient(t *testing.T) {
	svc := NewService(nil, nil, nil, &nopRecorder{}, logger.NewNop())
	_, err := svc.LoadPendingFor(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOpen(t *testing.T) {
	repo := &stubPendingRepo{items: []*domain.PendingService{
		{ID: "p1", ClientID: "c1", ServiceID: "svc1", Status: domain.PendingOpen},
	}}
	svc := NewService(repo, nil, catalog(), &nopRecorder{}, logger.NewNop())

	got, err := svc.GetOpen(context.Background(), "c1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "svc1", got.ServiceID)

	_, err = svc.GetOpen(context.Background(), "c1", "p-missing")
	assert.ErrorIs(t, err, ErrPendingNotFound)
}
