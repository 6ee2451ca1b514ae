package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository каталог услуг и шаблонов пакетов (Postgres)
//
// Сотрудники, выполняющие услугу, хранятся в employee_specialties (employee_id, service_id)
// Состав шаблона хранится в JSONB в любой из исторических форм (массив или объект)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func servicesSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"s.id",
		"s.name",
		"s.duration_minutes",
		"s.price",
		"s.active",
		"COALESCE(array_agg(es.employee_id) FILTER (WHERE es.employee_id IS NOT NULL), '{}')",
	).
		From("services s").
		LeftJoin("employee_specialties es ON es.service_id = s.id").
		GroupBy("s.id", "s.name", "s.duration_minutes", "s.price", "s.active")
}

// ListServices возвращает активные услуги каталога в порядке имени
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := servicesSelect().
		Where(squirrel.Eq{"s.active": true}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}
	return services, nil
}

// GetService возвращает услугу по ID, включая неактивные
func (r *Repository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := servicesSelect().
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}
	return svc, nil
}

// ListPackageTemplates возвращает все шаблоны пакетов
func (r *Repository) ListPackageTemplates(ctx context.Context) ([]*domain.PackageTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "services").
		From("package_templates").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPackageTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPackageTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.PackageTemplate, 0)
	for rows.Next() {
		var tpl domain.PackageTemplate
		var name sql.NullString
		var rawServices []byte

		if err := rows.Scan(&tpl.ID, &name, &rawServices); err != nil {
			return nil, fmt.Errorf("%w: ListPackageTemplates - scan row: %v", ErrScanRow, err)
		}
		tpl.Name = name.String

		if len(rawServices) > 0 {
			if err := json.Unmarshal(rawServices, &tpl.Services); err != nil {
				return nil, fmt.Errorf("%w: template id=%s: %v", ErrDecodeServices, tpl.ID, err)
			}
		}
		templates = append(templates, &tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPackageTemplates - rows error: %v", ErrScanRow, err)
	}
	return templates, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var duration sql.NullInt64
	var price sql.NullFloat64
	var employeeIDs pq.StringArray

	if err := row.Scan(&svc.ID, &svc.Name, &duration, &price, &svc.Active, &employeeIDs); err != nil {
		return nil, err
	}

	svc.DurationMinutes = int(duration.Int64)
	svc.Price = price.Float64
	svc.EmployeeIDs = []string(employeeIDs)
	return &svc, nil
}
