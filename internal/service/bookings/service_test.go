package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/clientpackage"
	employeeRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/employee"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/pendingservice"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	pkgTypes "github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeAppointments struct {
	existing []*domain.Appointment
	created  []*domain.Appointment
	getErr   error
}

func (f *fakeAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.created = append(f.created, appt)
	return appt, nil
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	for _, a := range append(f.existing, f.created...) {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointments) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	appt, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointments) GetByEmployeeAndDate(_ context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range f.existing {
		if a.EmployeeID == filter.EmployeeID && a.Date.Equal(filter.Date) {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeEmployees map[string]*domain.Employee

func (f fakeEmployees) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	if e, ok := f[id]; ok {
		return e, nil
	}
	return nil, employeeRepo.ErrEmployeeNotFound
}

type fakeCatalog map[string]*domain.Service

func (f fakeCatalog) GetService(_ context.Context, id string) (*domain.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f fakeCatalog) ListPackageTemplates(context.Context) ([]*domain.PackageTemplate, error) {
	return nil, nil
}

// fakePackages отдает пакеты из памяти, операции транзакции собирает настоящий репозиторий
type fakePackages struct {
	*clientpackage.Repository
	items map[string]*domain.ClientPackage
}

// newFakePackages пакет pkg-1 клиента client-1: Facial x4, одна сессия уже запланирована
func newFakePackages() *fakePackages {
	facial := &domain.ClientPackage{
		ID:       "pkg-1",
		ClientID: "client-1",
		Status:   domain.PackageActive,
	}
	facial.Snapshot = &domain.PackageSnapshot{
		Name:     "Facial x4",
		Services: domain.ServiceRefs{domain.NewObjectServiceRef("facial", "", "Facial", 4, 0)},
	}
	facial.SessionHistory = []domain.SessionHistoryEntry{
		{ServiceID: "facial", EmployeeID: "emp-1", Status: domain.SessionScheduled, AppointmentID: "appt-old"},
	}

	return &fakePackages{
		Repository: clientpackage.NewRepository(nil, "client_packages"),
		items:      map[string]*domain.ClientPackage{facial.ID: facial},
	}
}

func (f *fakePackages) GetByID(_ context.Context, id string) (*domain.ClientPackage, error) {
	if p, ok := f.items[id]; ok {
		return p, nil
	}
	return nil, clientpackage.ErrPackageNotFound
}

type fakePending struct {
	*pendingservice.Repository
	open []*domain.PendingService
}

func (f *fakePending) ListByClientAndStatus(context.Context, string, domain.PendingServiceStatus) ([]*domain.PendingService, error) {
	return f.open, nil
}

type fakeDocuments struct {
	inputs []*dynamodb.TransactWriteItemsInput
	err    error
}

func (f *fakeDocuments) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// fakeTx выполняет fn без транзакции и запоминает, что ошибка привела бы к откату
type fakeTx struct {
	rolledBack bool
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	f.rolledBack = err != nil
	return err
}

type fixture struct {
	appointments *fakeAppointments
	packages     *fakePackages
	documents    *fakeDocuments
	pending      *fakePending
	tx           *fakeTx
	service      *Service
}

func newFixture() *fixture {
	f := &fixture{
		appointments: &fakeAppointments{},
		packages:     newFakePackages(),
		documents:    &fakeDocuments{},
		pending:      &fakePending{Repository: pendingservice.NewRepository(nil, "pending_services")},
		tx:           &fakeTx{},
	}

	employees := fakeEmployees{
		"emp-1": {ID: "emp-1", Name: "Ana", AppointmentInterval: 30},
		"emp-2": {ID: "emp-2", Name: "Bia"},
	}
	catalog := fakeCatalog{
		"facial":  {ID: "facial", Name: "Facial", DurationMinutes: 60},
		"massage": {ID: "massage", Name: "Massagem"},
	}

	f.service = NewService(
		f.appointments,
		employees,
		catalog,
		f.packages,
		f.pending,
		f.documents,
		f.tx,
		logger.NewNop(),
	)
	seq := 0
	f.service.newID = func() string {
		seq++
		return fmt.Sprintf("appt-%d", seq)
	}
	return f
}

func line(serviceID, employeeID, date, hour string) domain.DraftLine {
	return domain.DraftLine{
		Provenance: domain.ProvenancePackage,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
		Time:       hour,
	}
}

func TestCreateBatch_PackageFacialThreeTimes(t *testing.T) {
	f := newFixture()

	req := domain.BookingRequest{
		ClientID:  "client-1",
		PackageID: ptr.Ptr("pkg-1"),
		Mode:      domain.ProvenancePackage,
		Agendamentos: []domain.DraftLine{
			line("facial", "emp-1", "2026-03-02", "10:00"),
			line("facial", "emp-1", "2026-03-09", "10:00"),
			line("facial", "emp-1", "2026-03-16", "10:00"),
		},
	}

	created, err := f.service.CreateBatch(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, created, 3)

	for _, appt := range created {
		assert.Equal(t, "client-1", appt.ClientID)
		assert.Equal(t, domain.AppointmentScheduled, appt.Status)
		assert.Equal(t, 60, appt.DurationMinutes)
		assert.Equal(t, "Facial", appt.ServiceName)
		require.NotNil(t, appt.PackageID)
		assert.Equal(t, "pkg-1", *appt.PackageID)
	}

	// Одна транзакция документов с одной операцией: дописать три сессии в историю пакета
	require.Len(t, f.documents.inputs, 1)
	items := f.documents.inputs[0].TransactItems
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Update)
	assert.Equal(t, "client_packages", aws.ToString(items[0].Update.TableName))

	entries, ok := items[0].Update.ExpressionAttributeValues[":entries"].(*types.AttributeValueMemberL)
	require.True(t, ok)
	assert.Len(t, entries.Value, 3)

	// Запись истории выполнится, только если никто не дописал историю после проверки
	length, ok := items[0].Update.ExpressionAttributeValues[":len"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "1", length.Value)
}

func TestCreateBatch_PackageEntitlements(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.BookingRequest
		wantErr error
	}{
		{
			name: "service not in package",
			req: domain.BookingRequest{
				ClientID:  "client-1",
				PackageID: ptr.Ptr("pkg-1"),
				Mode:      domain.ProvenancePackage,
				Agendamentos: []domain.DraftLine{
					line("massage", "emp-2", "2026-03-02", "09:00"),
					line("facial", "emp-1", "2026-03-02", "10:00"),
				},
			},
			wantErr: ErrNotEntitled,
		},
		{
			name: "more lines than sessions left",
			req: domain.BookingRequest{
				ClientID:  "client-1",
				PackageID: ptr.Ptr("pkg-1"),
				Mode:      domain.ProvenancePackage,
				Agendamentos: []domain.DraftLine{
					line("facial", "emp-1", "2026-03-02", "10:00"),
					line("facial", "emp-1", "2026-03-09", "10:00"),
					line("facial", "emp-1", "2026-03-16", "10:00"),
					line("facial", "emp-1", "2026-03-23", "10:00"),
				},
			},
			wantErr: ErrNotEntitled,
		},
		{
			name: "package of another client",
			req: domain.BookingRequest{
				ClientID:     "client-2",
				PackageID:    ptr.Ptr("pkg-1"),
				Mode:         domain.ProvenancePackage,
				Agendamentos: []domain.DraftLine{line("facial", "emp-1", "2026-03-02", "10:00")},
			},
			wantErr: ErrPackageNotFound,
		},
		{
			name: "unknown package",
			req: domain.BookingRequest{
				ClientID:     "client-1",
				PackageID:    ptr.Ptr("pkg-9"),
				Mode:         domain.ProvenancePackage,
				Agendamentos: []domain.DraftLine{line("facial", "emp-1", "2026-03-02", "10:00")},
			},
			wantErr: ErrPackageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.service.CreateBatch(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.appointments.created)
			assert.Empty(t, f.documents.inputs)
		})
	}
}

func TestCreateBatch_RescheduleNeedsOpenSession(t *testing.T) {
	f := newFixture()
	pkg := f.packages.items["pkg-1"]
	pkg.SessionHistory = append(pkg.SessionHistory, domain.SessionHistoryEntry{
		ServiceID: "facial", Status: domain.SessionConcluded, AppointmentID: "appt-done",
	})

	for _, original := range []string{"appt-done", "appt-missing"} {
		l := line("facial", "emp-1", "2026-03-05", "15:00")
		l.OriginalAppointmentID = original

		_, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
			ClientID:     "client-1",
			PackageID:    ptr.Ptr("pkg-1"),
			Mode:         domain.ProvenancePackage,
			Agendamentos: []domain.DraftLine{l},
		})
		assert.ErrorIs(t, err, ErrNotEntitled, original)
	}
	assert.Empty(t, f.appointments.created)
}

func TestCreateBatch_RescheduleOfScheduledSessionTakesNoCredit(t *testing.T) {
	f := newFixture()

	moved := line("facial", "emp-1", "2026-03-05", "15:00")
	moved.OriginalAppointmentID = "appt-old"

	// Три свободные сессии и перенос уже запланированной
	created, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:  "client-1",
		PackageID: ptr.Ptr("pkg-1"),
		Mode:      domain.ProvenancePackage,
		Agendamentos: []domain.DraftLine{
			moved,
			line("facial", "emp-1", "2026-03-02", "10:00"),
			line("facial", "emp-1", "2026-03-09", "10:00"),
			line("facial", "emp-1", "2026-03-16", "10:00"),
		},
	})
	require.NoError(t, err)
	assert.Len(t, created, 4)
}

func TestCreateBatch_AdHocWritesNoDocuments(t *testing.T) {
	f := newFixture()

	l := line("massage", "emp-2", "2026-03-02", "14:00")
	l.Provenance = domain.ProvenanceAdHoc

	created, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:     "client-1",
		Mode:         domain.ProvenanceAdHoc,
		Agendamentos: []domain.DraftLine{l},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	assert.Nil(t, created[0].PackageID)
	assert.Equal(t, domain.DefaultAppointmentDurationMinutes, created[0].DurationMinutes)
	assert.Empty(t, f.documents.inputs)
}

func TestCreateBatch_ConflictWithExistingAppointment(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{{
		ID:              "old",
		EmployeeID:      "emp-1",
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       pkgTypes.MustTimeString("10:30"),
		DurationMinutes: 30,
		Status:          domain.AppointmentConfirmed,
	}}

	_, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:     "client-1",
		PackageID:    ptr.Ptr("pkg-1"),
		Mode:         domain.ProvenancePackage,
		Agendamentos: []domain.DraftLine{line("facial", "emp-1", "2026-03-02", "10:00")},
	})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.True(t, f.tx.rolledBack)
	assert.Empty(t, f.documents.inputs)
}

func TestCreateBatch_CancelledAppointmentDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{{
		ID:              "old",
		EmployeeID:      "emp-1",
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       pkgTypes.MustTimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.AppointmentCancelled,
	}}

	created, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:     "client-1",
		PackageID:    ptr.Ptr("pkg-1"),
		Mode:         domain.ProvenancePackage,
		Agendamentos: []domain.DraftLine{line("facial", "emp-1", "2026-03-02", "10:00")},
	})
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestCreateBatch_ConflictInsideBatch(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:  "client-1",
		PackageID: ptr.Ptr("pkg-1"),
		Mode:      domain.ProvenancePackage,
		Agendamentos: []domain.DraftLine{
			line("facial", "emp-1", "2026-03-02", "10:00"),
			line("facial", "emp-1", "2026-03-02", "10:30"),
		},
	})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.True(t, f.tx.rolledBack)
}

func TestCreateBatch_PendingConsumption(t *testing.T) {
	f := newFixture()
	f.pending.open = []*domain.PendingService{
		{ID: "pend-1", ClientID: "client-1", ServiceID: "massage", Status: domain.PendingOpen},
	}

	stored := line("massage", "emp-2", "2026-03-02", "09:00")
	stored.Provenance = domain.ProvenancePending
	stored.PendingServiceID = "pend-1"

	legacy := line("massage", "emp-2", "2026-03-02", "11:00")
	legacy.Provenance = domain.ProvenancePending
	legacy.PendingServiceID = "legacy-7"

	created, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:     "client-1",
		Mode:         domain.ProvenancePending,
		Agendamentos: []domain.DraftLine{stored, legacy},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	// Списывается только долг из выделенного хранилища
	require.Len(t, f.documents.inputs, 1)
	items := f.documents.inputs[0].TransactItems
	require.Len(t, items, 1)
	assert.Equal(t, "pending_services", aws.ToString(items[0].Update.TableName))
	key := items[0].Update.Key["id"].(*types.AttributeValueMemberS)
	assert.Equal(t, "pend-1", key.Value)
	appt := items[0].Update.ExpressionAttributeValues[":appt"].(*types.AttributeValueMemberS)
	assert.Equal(t, created[0].ID, appt.Value)
}

func TestCreateBatch_RescheduleKeepsOriginalAppointment(t *testing.T) {
	f := newFixture()

	l := line("facial", "emp-1", "2026-03-05", "15:00")
	l.OriginalAppointmentID = "appt-old"

	created, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:     "client-1",
		PackageID:    ptr.Ptr("pkg-1"),
		Mode:         domain.ProvenancePackage,
		Agendamentos: []domain.DraftLine{l},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.NotNil(t, created[0].OriginalAppointmentID)
	assert.Equal(t, "appt-old", *created[0].OriginalAppointmentID)

	entries := f.documents.inputs[0].TransactItems[0].Update.ExpressionAttributeValues[":entries"].(*types.AttributeValueMemberL)
	entry := entries.Value[0].(*types.AttributeValueMemberM)
	original := entry.Value["original_appointment_id"].(*types.AttributeValueMemberS)
	assert.Equal(t, "appt-old", original.Value)
}

func TestCreateBatch_DocumentTransactionCancelled(t *testing.T) {
	f := newFixture()
	f.documents.err = &types.TransactionCanceledException{Message: aws.String("ConditionalCheckFailed")}

	_, err := f.service.CreateBatch(context.Background(), domain.BookingRequest{
		ClientID:     "client-1",
		PackageID:    ptr.Ptr("pkg-1"),
		Mode:         domain.ProvenancePackage,
		Agendamentos: []domain.DraftLine{line("facial", "emp-1", "2026-03-02", "10:00")},
	})
	require.ErrorIs(t, err, ErrEntitlementConflict)
	assert.True(t, f.tx.rolledBack)
}

func TestCreateBatch_InvalidRequests(t *testing.T) {
	complete := line("facial", "emp-1", "2026-03-02", "10:00")
	noTime := complete
	noTime.Time = ""

	tests := []struct {
		name    string
		req     domain.BookingRequest
		wantErr error
	}{
		{
			name:    "missing client",
			req:     domain.BookingRequest{Mode: domain.ProvenanceAdHoc, Agendamentos: []domain.DraftLine{complete}},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "package mode without package",
			req:     domain.BookingRequest{ClientID: "c", Mode: domain.ProvenancePackage, Agendamentos: []domain.DraftLine{complete}},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "ad-hoc mode with package",
			req:     domain.BookingRequest{ClientID: "c", PackageID: ptr.Ptr("pkg"), Mode: domain.ProvenanceAdHoc, Agendamentos: []domain.DraftLine{complete}},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "no lines",
			req:     domain.BookingRequest{ClientID: "c", Mode: domain.ProvenanceAdHoc},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "missing time",
			req:     domain.BookingRequest{ClientID: "c", Mode: domain.ProvenanceAdHoc, Agendamentos: []domain.DraftLine{noTime}},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "unknown employee",
			req:     domain.BookingRequest{ClientID: "c", Mode: domain.ProvenanceAdHoc, Agendamentos: []domain.DraftLine{line("facial", "emp-9", "2026-03-02", "10:00")}},
			wantErr: ErrEmployeeNotFound,
		},
		{
			name:    "unknown service",
			req:     domain.BookingRequest{ClientID: "c", Mode: domain.ProvenanceAdHoc, Agendamentos: []domain.DraftLine{line("nails", "emp-1", "2026-03-02", "10:00")}},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "ends after midnight",
			req:     domain.BookingRequest{ClientID: "c", Mode: domain.ProvenanceAdHoc, Agendamentos: []domain.DraftLine{line("facial", "emp-1", "2026-03-02", "23:30")}},
			wantErr: ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service.CreateBatch(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, f.appointments.created)
		})
	}
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f.appointments.existing = []*domain.Appointment{
		{ID: "a1", EmployeeID: "emp-1", Date: date, StartTime: pkgTypes.MustTimeString("10:00"), DurationMinutes: 60, Status: domain.AppointmentScheduled},
		{ID: "a2", EmployeeID: "emp-1", Date: date, StartTime: pkgTypes.MustTimeString("12:00"), DurationMinutes: 60, Status: domain.AppointmentConcluded},
	}

	t.Run("scheduled appointment", func(t *testing.T) {
		appt, err := f.service.CancelAppointment(context.Background(), "a1")
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentCancelled, appt.Status)

		// Время освободилось
		_, err = f.service.CreateBatch(context.Background(), domain.BookingRequest{
			ClientID:     "client-c",
			Mode:         domain.ProvenanceAdHoc,
			Agendamentos: []domain.DraftLine{line("facial", "emp-1", "2026-03-02", "10:00")},
		})
		require.NoError(t, err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		_, err := f.service.CancelAppointment(context.Background(), "a1")
		assert.ErrorIs(t, err, ErrAppointmentNotCancellable)
	})

	t.Run("concluded", func(t *testing.T) {
		_, err := f.service.CancelAppointment(context.Background(), "a2")
		assert.ErrorIs(t, err, ErrAppointmentNotCancellable)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := f.service.GetAppointment(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
