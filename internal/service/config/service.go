package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/config"
	"github.com/m04kA/SMC-SalonBooking/internal/service/config/models"
)

// Service сервис настроек салона
type Service struct {
	settingsRepo SettingsRepository
	nameCache    NameCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, nameCache NameCache, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		nameCache:    nameCache,
		logger:       logger,
	}
}

// GetDisplayName отображаемое имя салона: торговое, иначе юридическое
// Читается через кэш
func (s *Service) GetDisplayName(ctx context.Context) (*models.DisplayNameResponse, error) {
	if name, ok := s.nameCache.Get(); ok {
		return &models.DisplayNameResponse{Name: name}, nil
	}

	settings, err := s.load(ctx, "GetDisplayName")
	if err != nil {
		return nil, err
	}

	name := settings.DisplayName()
	s.nameCache.Set(name)
	return &models.DisplayNameResponse{Name: name}, nil
}

// Get возвращает настройки салона
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.load(ctx, "Get")
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// Update частично обновляет настройки и сбрасывает кэш имени
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating company settings")

	// 1. Валидация
	if req.LegalName != nil && strings.TrimSpace(*req.LegalName) == "" {
		s.logger.Warn("Update: empty legal name")
		return nil, fmt.Errorf("%w: legalName must not be empty", ErrInvalidInput)
	}

	// 2. Текущие настройки
	settings, err := s.load(ctx, "Update")
	if err != nil {
		return nil, err
	}

	// 3. Применяем переданные поля
	applyUpdate(settings, req)

	// 4. Сохраняем
	updated, err := s.settingsRepo.Update(ctx, settings)
	if err != nil {
		if errors.Is(err, configRepo.ErrSettingsNotFound) {
			s.logger.Warn("Update: settings id=%s disappeared during update", settings.ID)
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 5. Имя могло измениться
	s.nameCache.Invalidate()

	s.logger.Info("Update: successfully updated company settings id=%s", updated.ID)
	return models.FromDomainSettings(updated), nil
}

func (s *Service) load(ctx context.Context, method string) (*domain.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrSettingsNotFound) {
			s.logger.Warn("%s: company settings not found", method)
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return settings, nil
}

func applyUpdate(settings *domain.CompanySettings, req *models.UpdateSettingsRequest) {
	if req.LegalName != nil {
		settings.LegalName = strings.TrimSpace(*req.LegalName)
	}
	if req.TradeName != nil {
		if name := strings.TrimSpace(*req.TradeName); name != "" {
			settings.TradeName = &name
		} else {
			settings.TradeName = nil
		}
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		settings.Phone = &phone
	}
}
