package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/events"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
)

// Options настройки создания записи
type Options struct {
	DefaultShopID string
	// StrictSlotGuard включает запись-гарант SLOT#<date>#<time>, закрывающую гонку двух одновременных записей
	StrictSlotGuard bool
	// AtomicViews пишет оба представления одним батчем, если хранилище это умеет
	AtomicViews bool
}

// UseCase use case для создания записи на обслуживание
type UseCase struct {
	store     Store
	schedule  ScheduleResolver
	ids       IDGenerator
	publisher EventPublisher
	opts      Options
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store Store,
	schedule ScheduleResolver,
	ids IDGenerator,
	publisher EventPublisher,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.DefaultShopID == "" {
		opts.DefaultShopID = domain.DefaultShopID
	}
	return &UseCase{
		store:     store,
		schedule:  schedule,
		ids:       ids,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости слота и запись представлений не атомарны относительно других вызовов,
// если не включен StrictSlotGuard.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: shop=%q, date=%q, time=%q, phone=%q",
		req.ShopID, req.Date, req.Time, req.CustomerPhone)

	// 1. Валидация входных данных (до любого обращения к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	reservation, err := buildReservation(req, uc.opts.DefaultShopID)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем часы работы мастерской
	cfg, err := uc.schedule.Resolve(ctx, reservation.ShopID)
	if err != nil {
		return nil, uc.scheduleError(err)
	}

	// 3. Время должно попадать в часы работы
	if !cfg.Contains(reservation.Time) {
		uc.logger.Warn("CreateBooking: time=%s is out of hours %s-%s", reservation.Time, cfg.OpenTime, cfg.CloseTime)
		return nil, fmt.Errorf("%w: %s not in [%s, %s]", ErrOutOfHours, reservation.Time, cfg.OpenTime, cfg.CloseTime)
	}

	// 4. Проверяем, что слот свободен
	shopPK := domain.ShopPartition(reservation.ShopID)
	existing, err := uc.store.QueryByPrefix(ctx, shopPK, domain.SlotPrefix(reservation.Date, reservation.Time.String()))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to query slot: %v", err)
		return nil, fmt.Errorf("%w: query slot: %v", ErrStoreUnavailable, err)
	}
	if len(existing) > 0 {
		uc.logger.Warn("CreateBooking: slot %s %s is taken in shop=%s", reservation.Date, reservation.Time, reservation.ShopID)
		return nil, ErrSlotTaken
	}

	// 5. Генерируем идентификатор записи
	reservation.AppointmentID = uc.ids.NewID()

	// 6. Захватываем слот (только в строгом режиме)
	if uc.opts.StrictSlotGuard {
		if err := uc.acquireGuard(ctx, reservation); err != nil {
			return nil, err
		}
	}

	// 7. Пишем оба представления: сначала мастерской, затем клиента
	if err := uc.writeViews(ctx, reservation); err != nil {
		return nil, err
	}

	uc.publish(ctx, events.EventAppointmentBooked, reservation, "")

	uc.logger.Info("CreateBooking: created appointment id=%s shop=%s date=%s time=%s",
		reservation.AppointmentID, reservation.ShopID, reservation.Date, reservation.Time)

	return responseFromReservation(reservation), nil
}

func (uc *UseCase) scheduleError(err error) error {
	if errors.Is(err, schedule.ErrConfigInvalid) {
		uc.logger.Error("CreateBooking: invalid schedule config: %v", err)
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	uc.logger.Error("CreateBooking: failed to resolve schedule: %v", err)
	return fmt.Errorf("%w: resolve schedule: %v", ErrStoreUnavailable, err)
}

func guardItem(r *domain.Reservation) kv.Item {
	return kv.Item{
		PK: domain.ShopPartition(r.ShopID),
		SK: domain.SlotGuardSortKey(r.Date, r.Time.String()),
		Attrs: map[string]string{
			domain.AttrAppointmentID: r.AppointmentID,
			domain.AttrPhone:         r.CustomerPhone,
		},
	}
}

func (uc *UseCase) acquireGuard(ctx context.Context, r *domain.Reservation) error {
	created, err := uc.store.PutIfAbsent(ctx, guardItem(r))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to acquire slot guard: %v", err)
		return fmt.Errorf("%w: acquire slot guard: %v", ErrStoreUnavailable, err)
	}
	if !created {
		uc.logger.Warn("CreateBooking: slot guard %s %s is held by another appointment", r.Date, r.Time)
		return ErrSlotTaken
	}
	return nil
}

func (uc *UseCase) releaseGuard(ctx context.Context, r *domain.Reservation) {
	if !uc.opts.StrictSlotGuard {
		return
	}
	guard := guardItem(r)
	if err := uc.store.Delete(ctx, guard.PK, guard.SK); err != nil {
		uc.logger.Error("CreateBooking: failed to release slot guard %s/%s: %v", guard.PK, guard.SK, err)
	}
}

func viewItems(r *domain.Reservation) (kv.Item, kv.Item) {
	shopView := kv.Item{PK: r.PartitionKey(domain.ViewShop), SK: r.SortKey(), Attrs: r.Attributes()}
	customerView := kv.Item{PK: r.PartitionKey(domain.ViewCustomer), SK: r.SortKey(), Attrs: r.Attributes()}
	return shopView, customerView
}

func (uc *UseCase) writeViews(ctx context.Context, r *domain.Reservation) error {
	shopView, customerView := viewItems(r)

	if uc.opts.AtomicViews {
		err := uc.store.WriteBatch(ctx, []kv.Item{shopView, customerView}, nil)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kv.ErrBatchUnsupported) {
			uc.logger.Error("CreateBooking: failed to write views id=%s: %v", r.AppointmentID, err)
			uc.releaseGuard(ctx, r)
			return fmt.Errorf("%w: write views: %v", ErrStoreUnavailable, err)
		}
		uc.logger.Info("CreateBooking: store has no atomic batch, writing views sequentially")
	}

	if err := uc.store.Put(ctx, shopView); err != nil {
		uc.logger.Error("CreateBooking: failed to write shop view id=%s: %v", r.AppointmentID, err)
		uc.releaseGuard(ctx, r)
		return fmt.Errorf("%w: write shop view: %v", ErrStoreUnavailable, err)
	}

	if err := uc.store.Put(ctx, customerView); err != nil {
		uc.logger.Error("CreateBooking: failed to write customer view id=%s: %v", r.AppointmentID, err)

		// откатываем представление мастерской, иначе слот останется занятым без записи клиента
		if delErr := uc.store.Delete(ctx, shopView.PK, shopView.SK); delErr != nil {
			uc.logger.Error("CreateBooking: views diverged id=%s, shop view left behind: %v", r.AppointmentID, delErr)
			uc.publish(ctx, events.EventViewsDiverged, r, "customer view write failed, shop view not rolled back")
		} else {
			uc.releaseGuard(ctx, r)
		}
		return fmt.Errorf("%w: write customer view: %v", ErrStoreUnavailable, err)
	}

	return nil
}

func (uc *UseCase) publish(ctx context.Context, eventType events.EventType, r *domain.Reservation, detail string) {
	err := uc.publisher.Publish(ctx, events.Event{
		Type:          eventType,
		AppointmentID: r.AppointmentID,
		ShopID:        r.ShopID,
		Date:          r.Date,
		Time:          r.Time.String(),
		CustomerPhone: r.CustomerPhone,
		Detail:        detail,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s id=%s: %v", eventType, r.AppointmentID, err)
	}
}
