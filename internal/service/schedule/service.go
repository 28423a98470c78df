package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Service разрешает часы работы мастерской и сохраняет их
type Service struct {
	store  Store
	logger Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(store Store, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Resolve возвращает расписание мастерской.
// Порядок поиска: INFO/HOURS#<shopId> -> INFO/HOURS -> значения по умолчанию.
// Отсутствие записи ошибкой не является.
func (s *Service) Resolve(ctx context.Context, shopID string) (domain.ScheduleConfig, error) {
	// 1. Собственные часы мастерской
	if shopID != "" {
		cfg, found, err := s.load(ctx, shopID)
		if err != nil {
			return domain.ScheduleConfig{}, err
		}
		if found {
			return cfg, nil
		}
	}

	// 2. Общие часы всех мастерских
	cfg, found, err := s.load(ctx, "")
	if err != nil {
		return domain.ScheduleConfig{}, err
	}
	if found {
		return cfg, nil
	}

	// 3. Значения по умолчанию
	return domain.DefaultScheduleConfig(), nil
}

// SetHours сохраняет часы работы мастерской (пустой ShopID - общие часы)
func (s *Service) SetHours(ctx context.Context, cfg domain.ScheduleConfig) error {
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("SetHours: invalid config for shop=%q: %v", cfg.ShopID, err)
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	if err := s.store.Put(ctx, itemFromConfig(cfg)); err != nil {
		s.logger.Error("SetHours: failed to store hours for shop=%q: %v", cfg.ShopID, err)
		return fmt.Errorf("%w: put hours: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("SetHours: shop=%q open=%s close=%s slot=%d",
		cfg.ShopID, cfg.OpenTime, cfg.CloseTime, cfg.SlotDurationMinutes)
	return nil
}

func (s *Service) load(ctx context.Context, shopID string) (domain.ScheduleConfig, bool, error) {
	item, err := s.store.Get(ctx, domain.ConfigPartition, hoursSortKey(shopID))
	if errors.Is(err, kv.ErrItemNotFound) {
		return domain.ScheduleConfig{}, false, nil
	}
	if err != nil {
		s.logger.Error("Resolve: failed to read hours for shop=%q: %v", shopID, err)
		return domain.ScheduleConfig{}, false, fmt.Errorf("%w: get hours: %v", ErrStoreUnavailable, err)
	}

	cfg, err := configFromItem(shopID, item)
	if err != nil {
		s.logger.Error("Resolve: %v", err)
		return domain.ScheduleConfig{}, false, err
	}
	return cfg, true, nil
}
