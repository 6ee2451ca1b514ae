package bookings

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByEmployeeAndDate(ctx context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
}

// CatalogRepository интерфейс каталога услуг и шаблонов пакетов
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	ListPackageTemplates(ctx context.Context) ([]*domain.PackageTemplate, error)
}

// PackageStore купленные пакеты: строгое чтение и запись истории сессий в транзакции
// документного хранилища
type PackageStore interface {
	GetByID(ctx context.Context, id string) (*domain.ClientPackage, error)
	AppendHistoryItem(packageID string, historyLen int, entries []domain.SessionHistoryEntry) (types.TransactWriteItem, error)
}

// PendingServiceWriter выделенное хранилище долгов по услугам
type PendingServiceWriter interface {
	ListByClientAndStatus(ctx context.Context, clientID string, status domain.PendingServiceStatus) ([]*domain.PendingService, error)
	MarkScheduledItem(pendingServiceID, appointmentID string) types.TransactWriteItem
}

// DocumentTransactor атомарная запись нескольких документов
type DocumentTransactor interface {
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
