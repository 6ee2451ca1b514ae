package employee

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий сотрудников (Postgres)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID возвращает сотрудника со специализациями и шагом сетки записи
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"e.id",
		"e.name",
		"e.appointment_interval",
		"e.active",
		"COALESCE(array_agg(es.service_id) FILTER (WHERE es.service_id IS NOT NULL), '{}')",
	).
		From("employees e").
		LeftJoin("employee_specialties es ON es.employee_id = e.id").
		Where(squirrel.Eq{"e.id": id}).
		GroupBy("e.id", "e.name", "e.appointment_interval", "e.active").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var emp domain.Employee
	var interval sql.NullInt64
	var specialties pq.StringArray

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&emp.ID,
		&emp.Name,
		&interval,
		&emp.Active,
		&specialties,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	// NULL в appointment_interval означает "не настроен": слотов не будет
	emp.AppointmentInterval = int(interval.Int64)
	emp.Specialties = []string(specialties)
	return &emp, nil
}
