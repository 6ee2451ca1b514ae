package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const tableCompanySettings = "company_settings"

// Repository репозиторий настроек салона
// В таблице одна строка на инсталляцию; при нескольких берется последняя обновленная
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущие настройки салона
func (r *Repository) Get(ctx context.Context) (*domain.CompanySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"legal_name",
		"trade_name",
		"phone",
		"updated_at",
	).
		From(tableCompanySettings).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.CompanySettings
	var tradeName, phone sql.NullString
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.LegalName,
		&tradeName,
		&phone,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if tradeName.Valid {
		settings.TradeName = &tradeName.String
	}
	if phone.Valid {
		settings.Phone = &phone.String
	}
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Update обновляет настройки по ID
func (r *Repository) Update(ctx context.Context, settings *domain.CompanySettings) (*domain.CompanySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableCompanySettings).
		Set("legal_name", settings.LegalName).
		Set("trade_name", settings.TradeName).
		Set("phone", settings.Phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": settings.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time
	return settings, nil
}
