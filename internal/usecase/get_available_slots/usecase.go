package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
)

// UseCase use case для получения свободных слотов мастерской на дату
type UseCase struct {
	store         Store
	schedule      ScheduleResolver
	defaultShopID string
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store Store, schedule ScheduleResolver, defaultShopID string, logger Logger) *UseCase {
	if defaultShopID == "" {
		defaultShopID = domain.DefaultShopID
	}
	return &UseCase{
		store:         store,
		schedule:      schedule,
		defaultShopID: defaultShopID,
		logger:        logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%q, date=%q", req.ShopID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	shopID := req.ShopID
	if shopID == "" {
		shopID = uc.defaultShopID
	}

	// 2. Получаем часы работы мастерской
	cfg, err := uc.schedule.Resolve(ctx, shopID)
	if err != nil {
		if errors.Is(err, schedule.ErrConfigInvalid) {
			uc.logger.Error("GetAvailableSlots: invalid schedule config: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve schedule: %v", err)
		return nil, fmt.Errorf("%w: resolve schedule: %v", ErrStoreUnavailable, err)
	}

	// 3. Строим сетку слотов дня
	grid, err := schedule.GenerateSlots(cfg)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for shop=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	// 4. Получаем все записи мастерской на дату
	items, err := uc.store.QueryByPrefix(ctx, domain.ShopPartition(shopID), domain.DatePrefix(req.Date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to query appointments: %v", err)
		return nil, fmt.Errorf("%w: query appointments: %v", ErrStoreUnavailable, err)
	}

	// 5. Исключаем занятые слоты
	free, taken := splitGrid(grid, takenTimes(items))

	uc.logger.Info("GetAvailableSlots: shop=%s date=%s free=%d taken=%d", shopID, req.Date, len(free), len(taken))

	return &Response{
		ShopID: shopID,
		Date:   req.Date,
		Config: cfg,
		Free:   free,
		Taken:  taken,
	}, nil
}
