package packages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubPackageRepo struct {
	packages []*domain.ClientPackage
	err      error
}

func (s *stubPackageRepo) ListByClientAndStatus(_ context.Context, clientID string, status domain.PackageStatus) ([]*domain.ClientPackage, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]*domain.ClientPackage, 0)
	for _, p := range s.packages {
		if p.ClientID == clientID && p.Status == status {
			result = append(result, p)
		}
	}
	return result, nil
}

type stubCatalogRepo struct {
	templates []*domain.PackageTemplate
	err       error
}

func (s *stubCatalogRepo) ListPackageTemplates(context.Context) ([]*domain.PackageTemplate, error) {
	return s.templates, s.err
}

type countingRecorder struct {
	sources []string
}

func (c *countingRecorder) IncFetchDegradation(source string) {
	c.sources = append(c.sources, source)
}

func facialPackage() *domain.ClientPackage {
	return &domain.ClientPackage{
		ID:       "cp-1",
		ClientID: "client-C",
		Status:   domain.PackageActive,
		Snapshot: &domain.PackageSnapshot{
			Name:     "Facial x3",
			Services: domain.ServiceRefs{domain.NewObjectServiceRef("svc1", "", "", 3, 0)},
		},
		SessionHistory: []domain.SessionHistoryEntry{
			{ServiceID: "svc1", Status: domain.SessionConcluded, AppointmentID: "a1"},
		},
	}
}

func TestService_ListActive(t *testing.T) {
	t.Run("нормализует активные пакеты", func(t *testing.T) {
		finished := facialPackage()
		finished.ID = "cp-old"
		finished.Status = domain.PackageFinished

		svc := NewService(
			&stubPackageRepo{packages: []*domain.ClientPackage{facialPackage(), finished}},
			&stubCatalogRepo{},
			&countingRecorder{},
			logger.NewNop(),
		)

		pkgs, err := svc.ListActive(context.Background(), "client-C")
		require.NoError(t, err)
		require.Len(t, pkgs, 1)
		assert.Equal(t, "Facial x3", pkgs[0].Name)
	})

	t.Run("ошибка хранилища: пустой список", func(t *testing.T) {
		rec := &countingRecorder{}
		svc := NewService(&stubPackageRepo{err: errors.New("timeout")}, &stubCatalogRepo{}, rec, logger.NewNop())

		pkgs, err := svc.ListActive(context.Background(), "client-C")
		require.NoError(t, err)
		assert.Empty(t, pkgs)
		assert.Equal(t, []string{"client_packages"}, rec.sources)
	})

	t.Run("ошибка каталога: нормализация без шаблонов", func(t *testing.T) {
		raw := &domain.ClientPackage{
			ID:        "cp-2",
			ClientID:  "client-C",
			Status:    domain.PackageActive,
			PackageID: "tpl-1",
			Name:      "Corte",
			Services:  domain.ServiceRefs{domain.NewBareServiceRef("svc-raw")},
		}
		rec := &countingRecorder{}
		svc := NewService(&stubPackageRepo{packages: []*domain.ClientPackage{raw}}, &stubCatalogRepo{err: errors.New("db down")}, rec, logger.NewNop())

		pkgs, err := svc.ListActive(context.Background(), "client-C")
		require.NoError(t, err)
		require.Len(t, pkgs, 1)
		assert.Equal(t, domain.TierRaw, pkgs[0].Tier)
		assert.Equal(t, []string{"package_templates"}, rec.sources)
	})

	t.Run("пустой clientID", func(t *testing.T) {
		svc := NewService(&stubPackageRepo{}, &stubCatalogRepo{}, &countingRecorder{}, logger.NewNop())
		_, err := svc.ListActive(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetSessions(t *testing.T) {
	svc := NewService(
		&stubPackageRepo{packages: []*domain.ClientPackage{facialPackage()}},
		&stubCatalogRepo{},
		&countingRecorder{},
		logger.NewNop(),
	)

	resp, err := svc.GetSessions(context.Background(), "client-C", "cp-1", "svc1")
	require.NoError(t, err)
	require.NotNil(t, resp.Ledger)
	assert.Equal(t, 3, resp.Ledger.Total)
	assert.Equal(t, 1, resp.Ledger.Used)
	assert.Equal(t, 2, resp.Ledger.Left)
	assert.Empty(t, resp.Reschedulable)

	_, err = svc.GetSessions(context.Background(), "client-C", "cp-missing", "svc1")
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestService_ListActiveWithLedger(t *testing.T) {
	svc := NewService(
		&stubPackageRepo{packages: []*domain.ClientPackage{facialPackage()}},
		&stubCatalogRepo{},
		&countingRecorder{},
		logger.NewNop(),
	)

	resp, err := svc.ListActiveWithLedger(context.Background(), "client-C")
	require.NoError(t, err)
	require.Len(t, resp.Packages, 1)

	pkg := resp.Packages[0]
	assert.Equal(t, "snapshot", pkg.Source)
	assert.True(t, pkg.Custom)
	require.Len(t, pkg.Services, 1)
	require.NotNil(t, pkg.Services[0].Ledger)
	assert.Equal(t, 2, pkg.Services[0].Ledger.Left)
}
