package eligibility

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubCatalog struct {
	services []*domain.Service
	err      error
}

func (s *stubCatalog) ListServices(context.Context) ([]*domain.Service, error) {
	return s.services, s.err
}

type stubPackages struct {
	pkgs []*domain.CanonicalPackage
	err  error
}

func (s *stubPackages) ListActive(context.Context, string) ([]*domain.CanonicalPackage, error) {
	return s.pkgs, s.err
}

type stubPending struct {
	items []domain.PendingService
}

func (s *stubPending) LoadPendingFor(_ context.Context, _ string, _ []domain.PendingService) ([]domain.PendingService, error) {
	return s.items, nil
}

type recorder struct{ sources []string }

func (r *recorder) IncFetchDegradation(source string) { r.sources = append(r.sources, source) }

func testCatalog() *stubCatalog {
	return &stubCatalog{services: []*domain.Service{
		{ID: "A", Name: "Corte", DurationMinutes: 30},
		{ID: "B", Name: "Facial", DurationMinutes: 60},
		{ID: "C", Name: "Massagem", DurationMinutes: 90},
	}}
}

func serviceIDs(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ServiceID)
	}
	return ids
}

func newService(catalog *stubCatalog, pkgs *stubPackages, pending *stubPending) *Service {
	return NewService(catalog, pkgs, pending, &recorder{}, logger.NewNop())
}

func TestAvailableServices_AdHoc(t *testing.T) {
	employee := &domain.Employee{ID: "e1", Specialties: []string{"A"}}
	svc := newService(testCatalog(), &stubPackages{}, &stubPending{})

	got, err := svc.AvailableServices(context.Background(), domain.ProvenanceAdHoc, employee, Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, serviceIDs(got.Items))
	assert.Empty(t, got.Warning)
}

func TestAvailableServices_Package(t *testing.T) {
	ctx := context.Background()
	employee := &domain.Employee{ID: "e1", Specialties: []string{"A", "B"}}

	t.Run("персонализированный пакет: пересечение со специализациями", func(t *testing.T) {
		pkg := &domain.CanonicalPackage{
			ID:       "cp-1",
			Services: domain.ServiceRefs{domain.NewBareServiceRef("B"), domain.NewBareServiceRef("C")},
			Tier:     domain.TierSnapshot,
		}
		svc := newService(testCatalog(), &stubPackages{pkgs: []*domain.CanonicalPackage{pkg}}, &stubPending{})

		got, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1", PackageID: "cp-1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, serviceIDs(got.Items))
		assert.Empty(t, got.Warning)
	})

	t.Run("персонализированный пакет без подходящих услуг: предупреждение", func(t *testing.T) {
		pkg := &domain.CanonicalPackage{
			ID:       "cp-1",
			Services: domain.ServiceRefs{domain.NewBareServiceRef("C")},
		}
		svc := newService(testCatalog(), &stubPackages{pkgs: []*domain.CanonicalPackage{pkg}}, &stubPending{})

		got, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1", PackageID: "cp-1"})
		require.NoError(t, err)
		assert.Empty(t, got.Items)
		assert.Equal(t, domain.EmptyCustomPackageWarning, got.Warning)
	})

	t.Run("пакет из каталога не фильтруется по специализации", func(t *testing.T) {
		pkg := &domain.CanonicalPackage{
			ID:        "cp-2",
			PackageID: "tpl-1",
			Services:  domain.ServiceRefs{domain.NewBareServiceRef("B"), domain.NewBareServiceRef("C")},
		}
		svc := newService(testCatalog(), &stubPackages{pkgs: []*domain.CanonicalPackage{pkg}}, &stubPending{})

		got, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1", PackageID: "cp-2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C"}, serviceIDs(got.Items))
	})

	t.Run("неизвестные услуги и исчерпанные сессии отбрасываются", func(t *testing.T) {
		pkg := &domain.CanonicalPackage{
			ID:        "cp-3",
			PackageID: "tpl-1",
			Services: domain.ServiceRefs{
				domain.NewObjectServiceRef("A", "", "", 1, 0),
				domain.NewObjectServiceRef("B", "", "", 3, 0),
				domain.NewBareServiceRef("ghost"),
			},
			History: []domain.SessionHistoryEntry{
				{ServiceID: "A", Status: domain.SessionConcluded, AppointmentID: "a1"},
				{ServiceID: "B", Status: domain.SessionConcluded, AppointmentID: "a2"},
			},
		}
		svc := newService(testCatalog(), &stubPackages{pkgs: []*domain.CanonicalPackage{pkg}}, &stubPending{})

		got, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1", PackageID: "cp-3"})
		require.NoError(t, err)
		require.Equal(t, []string{"B"}, serviceIDs(got.Items))
		require.NotNil(t, got.Items[0].Sessions)
		assert.Equal(t, 2, got.Items[0].Sessions.Left)
	})

	t.Run("единственный активный пакет выбирается неявно", func(t *testing.T) {
		pkg := &domain.CanonicalPackage{
			ID:        "cp-only",
			PackageID: "tpl-1",
			Services:  domain.ServiceRefs{domain.NewBareServiceRef("A")},
		}
		svc := newService(testCatalog(), &stubPackages{pkgs: []*domain.CanonicalPackage{pkg}}, &stubPending{})

		got, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1"})
		require.NoError(t, err)
		assert.Equal(t, "cp-only", got.PackageID)
		assert.Equal(t, []string{"A"}, serviceIDs(got.Items))
	})

	t.Run("несколько пакетов без выбора", func(t *testing.T) {
		pkgs := []*domain.CanonicalPackage{{ID: "cp-1"}, {ID: "cp-2"}}
		svc := newService(testCatalog(), &stubPackages{pkgs: pkgs}, &stubPending{})

		_, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1"})
		assert.ErrorIs(t, err, ErrPackageRequired)
	})

	t.Run("пакет не найден: пустой список", func(t *testing.T) {
		svc := newService(testCatalog(), &stubPackages{pkgs: []*domain.CanonicalPackage{{ID: "cp-1"}}}, &stubPending{})

		got, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1", PackageID: "cp-x"})
		require.NoError(t, err)
		assert.Empty(t, got.Items)
	})

	t.Run("каталог недоступен: пустой список", func(t *testing.T) {
		pkg := &domain.CanonicalPackage{ID: "cp-1", PackageID: "tpl", Services: domain.ServiceRefs{domain.NewBareServiceRef("A")}}
		rec := &recorder{}
		svc := NewService(&stubCatalog{err: errors.New("down")}, &stubPackages{pkgs: []*domain.CanonicalPackage{pkg}}, &stubPending{}, rec, logger.NewNop())

		got, err := svc.AvailableServices(ctx, domain.ProvenancePackage, employee, Context{ClientID: "c1", PackageID: "cp-1"})
		require.NoError(t, err)
		assert.Empty(t, got.Items)
		assert.Equal(t, []string{"services"}, rec.sources)
	})
}

func TestAvailableServices_Pending(t *testing.T) {
	pending := &stubPending{items: []domain.PendingService{
		{ID: "p1", ServiceID: "B", Name: "Retoque facial", Status: domain.PendingOpen},
		{ID: "p2", ServiceID: "C", Status: domain.PendingOpen},
		{ID: "p3", ServiceID: "Z", Status: domain.PendingOpen},
	}}
	svc := newService(testCatalog(), &stubPackages{}, pending)

	got, err := svc.AvailableServices(context.Background(), domain.ProvenancePending, nil, Context{ClientID: "c1"})
	require.NoError(t, err)
	require.Len(t, got.Items, 3)

	assert.Equal(t, "Retoque facial", got.Items[0].Name)
	assert.Equal(t, "p1", got.Items[0].PendingServiceID)
	assert.Equal(t, "Massagem", got.Items[1].Name)
	assert.Equal(t, domain.PendingServicePlaceholderName, got.Items[2].Name)
}

func TestAvailableServices_InvalidMode(t *testing.T) {
	svc := newService(testCatalog(), &stubPackages{}, &stubPending{})

	_, err := svc.AvailableServices(context.Background(), domain.Provenance("outro"), nil, Context{})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = svc.AvailableServices(context.Background(), domain.ProvenancePending, nil, Context{})
	assert.ErrorIs(t, err, ErrClientRequired)
}
