package select_pending_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pending"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubPending struct {
	items []domain.PendingService
}

func (s *stubPending) GetOpen(_ context.Context, clientID, id string) (*domain.PendingService, error) {
	for i := range s.items {
		if s.items[i].ClientID == clientID && s.items[i].ID == id && s.items[i].IsOpen() {
			return &s.items[i], nil
		}
	}
	return nil, pending.ErrPendingNotFound
}

func TestExecute_SelectsPendingService(t *testing.T) {
	store := lines.NewStore()
	draft := store.Open("emp-1")
	draft.Select(lines.Selection{ClientID: "client-c", Mode: domain.ProvenancePackage, PackageID: "pkg-1"})
	require.NoError(t, draft.AddLine())

	src := &stubPending{items: []domain.PendingService{
		{ID: "p1", ClientID: "client-c", ServiceID: "svc-retouch", Status: domain.PendingOpen},
	}}
	uc := NewUseCase(store, src, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{DraftID: draft.ID(), PendingServiceID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, lines.Selection{ClientID: "client-c", Mode: domain.ProvenancePending}, resp.State.Selection)
	assert.Equal(t, []domain.DraftLine{{
		Provenance:       domain.ProvenancePending,
		ServiceID:        "svc-retouch",
		PendingServiceID: "p1",
	}}, resp.State.Lines)
}

func TestExecute_Errors(t *testing.T) {
	src := &stubPending{items: []domain.PendingService{
		{ID: "p-used", ClientID: "client-c", ServiceID: "svc", Status: domain.PendingScheduled},
	}}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "already scheduled", req: Request{ClientID: "client-c", PendingServiceID: "p-used"}, wantErr: ErrPendingNotFound},
		{name: "unknown", req: Request{ClientID: "client-c", PendingServiceID: "nope"}, wantErr: ErrPendingNotFound},
		{name: "no client", req: Request{PendingServiceID: "p-used"}, wantErr: ErrInvalidInput},
		{name: "no pending id", req: Request{ClientID: "client-c"}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := lines.NewStore()
			draft := store.Open("emp-1")
			uc := NewUseCase(store, src, logger.NewNop())

			req := tt.req
			req.DraftID = draft.ID()
			_, err := uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	uc := NewUseCase(lines.NewStore(), src, logger.NewNop())
	_, err := uc.Execute(context.Background(), &Request{DraftID: "missing"})
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
