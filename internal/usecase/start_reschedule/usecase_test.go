package start_reschedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/internal/service/packages"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubPackages struct {
	pkg *domain.CanonicalPackage
}

func (s *stubPackages) GetActive(_ context.Context, clientID, packageID string) (*domain.CanonicalPackage, error) {
	if s.pkg != nil && s.pkg.ClientID == clientID && s.pkg.ID == packageID {
		return s.pkg, nil
	}
	return nil, packages.ErrPackageNotFound
}

func facial() *domain.CanonicalPackage {
	return &domain.CanonicalPackage{
		ID:       "pkg-facial",
		ClientID: "client-c",
		Name:     "Facial x3",
		History: []domain.SessionHistoryEntry{
			{ServiceID: "svc1", EmployeeID: "emp-1", Status: domain.SessionConcluded, AppointmentID: "a1"},
			{ServiceID: "svc1", EmployeeID: "emp-2", Status: domain.SessionCancelled, AppointmentID: "a2"},
		},
	}
}

func TestExecute_CollapsesDraftToRescheduleLine(t *testing.T) {
	store := lines.NewStore()
	draft := store.Open("emp-1")
	draft.Select(lines.Selection{ClientID: "client-c", Mode: domain.ProvenanceAdHoc})
	require.NoError(t, draft.UpdateField(0, domain.FieldServiceID, "svc9"))
	require.NoError(t, draft.AddLine())
	require.NoError(t, draft.AddLine())

	uc := NewUseCase(store, &stubPackages{pkg: facial()}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{DraftID: draft.ID(), PackageID: "pkg-facial", AppointmentID: "a2"})
	require.NoError(t, err)

	assert.Equal(t, lines.Selection{ClientID: "client-c", Mode: domain.ProvenancePackage, PackageID: "pkg-facial"}, resp.State.Selection)
	require.Len(t, resp.State.Lines, 1)
	assert.Equal(t, domain.DraftLine{
		Provenance:            domain.ProvenancePackage,
		ServiceID:             "svc1",
		EmployeeID:            "emp-2",
		OriginalAppointmentID: "a2",
	}, resp.State.Lines[0])
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "concluded session", req: Request{ClientID: "client-c", PackageID: "pkg-facial", AppointmentID: "a1"}, wantErr: ErrSessionConcluded},
		{name: "unknown session", req: Request{ClientID: "client-c", PackageID: "pkg-facial", AppointmentID: "zz"}, wantErr: ErrSessionNotFound},
		{name: "foreign package", req: Request{ClientID: "client-x", PackageID: "pkg-facial", AppointmentID: "a2"}, wantErr: ErrPackageNotFound},
		{name: "no client", req: Request{PackageID: "pkg-facial", AppointmentID: "a2"}, wantErr: ErrInvalidInput},
		{name: "no appointment", req: Request{ClientID: "client-c", PackageID: "pkg-facial"}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := lines.NewStore()
			draft := store.Open("emp-1")
			require.NoError(t, draft.AddLine())

			uc := NewUseCase(store, &stubPackages{pkg: facial()}, logger.NewNop())
			req := tt.req
			req.DraftID = draft.ID()

			_, err := uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			// Черновик не тронут
			assert.Len(t, draft.State().Lines, 2)
		})
	}
}

func TestExecute_DraftNotFound(t *testing.T) {
	uc := NewUseCase(lines.NewStore(), &stubPackages{}, logger.NewNop())
	_, err := uc.Execute(context.Background(), &Request{DraftID: "missing"})
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
