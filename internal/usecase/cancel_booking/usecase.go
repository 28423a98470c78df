package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/events"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Options настройки отмены записи
type Options struct {
	DefaultShopID string
	// AtomicViews удаляет все найденные записи одним батчем, если хранилище это умеет
	AtomicViews bool
	// ReleaseSlotGuard удаляет гарант слота вместе с представлением мастерской
	ReleaseSlotGuard bool
}

// UseCase use case для отмены записи
type UseCase struct {
	store     Store
	publisher EventPublisher
	opts      Options
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store Store, publisher EventPublisher, opts Options, logger Logger) *UseCase {
	if opts.DefaultShopID == "" {
		opts.DefaultShopID = domain.DefaultShopID
	}
	return &UseCase{
		store:     store,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

// Execute выполняет use case отмены записи.
// Успехом считается удаление хотя бы одного представления: второе могло не существовать.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: id=%q, phone=%q, date=%q", req.AppointmentID, req.CustomerPhone, req.Date)

	// 1. Определяем режим поиска
	mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Ищем записи
	var matches []kv.Item
	switch mode {
	case lookupByID:
		matches, err = uc.findByID(ctx, req)
	case lookupByPhoneAndDate:
		matches, err = uc.findFirstByPhoneAndDate(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		uc.logger.Warn("CancelBooking: nothing matched id=%q, phone=%q, date=%q", req.AppointmentID, req.CustomerPhone, req.Date)
		return nil, ErrNotFound
	}

	// 3. Дополняем парными представлениями и гарантами слота
	deletes, reservations, err := uc.completeViews(ctx, matches)
	if err != nil {
		return nil, err
	}

	// 4. Удаляем
	if err := uc.deleteAll(ctx, deletes, reservations); err != nil {
		return nil, err
	}

	for _, r := range reservations {
		uc.publish(ctx, events.EventAppointmentCancelled, r, "")
		uc.logger.Info("CancelBooking: cancelled appointment id=%s shop=%s date=%s time=%s",
			r.AppointmentID, r.ShopID, r.Date, r.Time)
	}

	return &Response{Reservations: reservations, RemovedRecords: len(deletes)}, nil
}

// findByID ищет по суффиксу ID в партиции мастерской и, если указан телефон, в партиции клиента
func (uc *UseCase) findByID(ctx context.Context, req *Request) ([]kv.Item, error) {
	shopID := req.ShopID
	if shopID == "" {
		shopID = uc.opts.DefaultShopID
	}

	partitions := []string{domain.ShopPartition(shopID)}
	if req.CustomerPhone != "" {
		partitions = append(partitions, domain.CustomerPartition(req.CustomerPhone))
	}

	matches := make([]kv.Item, 0, len(partitions))
	for _, pk := range partitions {
		items, err := uc.store.QueryByPrefix(ctx, pk, domain.AppointmentKeyPrefix)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to scan partition %s: %v", pk, err)
			return nil, fmt.Errorf("%w: scan %s: %v", ErrStoreUnavailable, pk, err)
		}
		for _, item := range items {
			if domain.HasAppointmentID(item.SK, req.AppointmentID) {
				matches = append(matches, item)
			}
		}
	}

	return matches, nil
}

// findFirstByPhoneAndDate берет только первую (самую раннюю) запись клиента за день
func (uc *UseCase) findFirstByPhoneAndDate(ctx context.Context, req *Request) ([]kv.Item, error) {
	pk := domain.CustomerPartition(req.CustomerPhone)
	items, err := uc.store.QueryByPrefix(ctx, pk, domain.DatePrefix(req.Date))
	if err != nil {
		uc.logger.Error("CancelBooking: failed to query partition %s: %v", pk, err)
		return nil, fmt.Errorf("%w: query %s: %v", ErrStoreUnavailable, pk, err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if len(items) > 1 {
		uc.logger.Warn("CancelBooking: phone=%s has %d appointments on %s, cancelling the first one",
			req.CustomerPhone, len(items), req.Date)
	}
	return items[:1], nil
}

// completeViews строит полный список ключей к удалению.
// Ключ парного представления берется из атрибутов найденной записи.
func (uc *UseCase) completeViews(ctx context.Context, matches []kv.Item) ([]kv.Key, []*domain.Reservation, error) {
	seen := make(map[kv.Key]struct{})
	deletes := make([]kv.Key, 0, len(matches)*2)
	add := func(key kv.Key) bool {
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		deletes = append(deletes, key)
		return true
	}

	reservations := make([]*domain.Reservation, 0, len(matches))
	byID := make(map[string]*domain.Reservation)
	shopViews := make([]*domain.Reservation, 0, len(matches))

	for _, item := range matches {
		// представление уже добавлено как парное к другой найденной записи
		if !add(item.Key()) {
			continue
		}

		r, ok := domain.ReservationFromRecord(item.PK, item.SK, item.Attrs)
		if ok {
			if existing, dup := byID[r.AppointmentID]; dup {
				mergeReservation(existing, r)
			} else {
				byID[r.AppointmentID] = r
				reservations = append(reservations, r)
			}
			if domain.IsShopPartition(item.PK) {
				shopViews = append(shopViews, r)
			}
		}

		counterpartPK, ok := domain.CounterpartKey(item.PK, item.SK, item.Attrs)
		if !ok {
			uc.logger.Warn("CancelBooking: record %s/%s has no counterpart data", item.PK, item.SK)
			continue
		}
		counterpart := kv.Key{PK: counterpartPK, SK: item.SK}
		if _, ok := seen[counterpart]; ok {
			continue
		}

		found, err := uc.exists(ctx, counterpart)
		if err != nil {
			return nil, nil, err
		}
		if !found {
			uc.logger.Warn("CancelBooking: counterpart view %s/%s is missing", counterpart.PK, counterpart.SK)
			continue
		}
		add(counterpart)
		// у представления клиента ShopID взят из атрибута shop, по нему и построен counterpart
		if r != nil && domain.IsShopPartition(counterpart.PK) {
			shopViews = append(shopViews, r)
		}
	}

	if uc.opts.ReleaseSlotGuard {
		for _, r := range shopViews {
			guard := kv.Key{PK: domain.ShopPartition(r.ShopID), SK: domain.SlotGuardSortKey(r.Date, r.Time.String())}
			item, err := uc.store.Get(ctx, guard.PK, guard.SK)
			if errors.Is(err, kv.ErrItemNotFound) {
				continue
			}
			if err != nil {
				uc.logger.Error("CancelBooking: failed to read slot guard %s/%s: %v", guard.PK, guard.SK, err)
				return nil, nil, fmt.Errorf("%w: get slot guard: %v", ErrStoreUnavailable, err)
			}
			// гарант мог перейти к другой записи на тот же слот
			if item.Attr(domain.AttrAppointmentID) == r.AppointmentID {
				add(guard)
			}
		}
	}

	return deletes, reservations, nil
}

func (uc *UseCase) exists(ctx context.Context, key kv.Key) (bool, error) {
	_, err := uc.store.Get(ctx, key.PK, key.SK)
	if errors.Is(err, kv.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		uc.logger.Error("CancelBooking: failed to read %s/%s: %v", key.PK, key.SK, err)
		return false, fmt.Errorf("%w: get %s/%s: %v", ErrStoreUnavailable, key.PK, key.SK, err)
	}
	return true, nil
}

func (uc *UseCase) deleteAll(ctx context.Context, deletes []kv.Key, reservations []*domain.Reservation) error {
	if uc.opts.AtomicViews {
		err := uc.store.WriteBatch(ctx, nil, deletes)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kv.ErrBatchUnsupported) {
			uc.logger.Error("CancelBooking: failed to delete %d records: %v", len(deletes), err)
			return fmt.Errorf("%w: delete batch: %v", ErrStoreUnavailable, err)
		}
		uc.logger.Info("CancelBooking: store has no atomic batch, deleting sequentially")
	}

	for i, key := range deletes {
		if err := uc.store.Delete(ctx, key.PK, key.SK); err != nil {
			uc.logger.Error("CancelBooking: failed to delete %s/%s: %v", key.PK, key.SK, err)
			if i > 0 {
				for _, r := range reservations {
					uc.publish(ctx, events.EventViewsDiverged, r, fmt.Sprintf("delete of %s/%s failed after %d deletes", key.PK, key.SK, i))
				}
			}
			return fmt.Errorf("%w: delete %s/%s: %v", ErrStoreUnavailable, key.PK, key.SK, err)
		}
	}
	return nil
}

// mergeReservation дополняет данные записи из второго представления
func mergeReservation(dst, src *domain.Reservation) {
	if dst.ShopID == "" {
		dst.ShopID = src.ShopID
	}
	if dst.CustomerPhone == "" {
		dst.CustomerPhone = src.CustomerPhone
	}
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
		uc.logger.Warn("CancelBooking: failed to publish %s id=%s: %v", eventType, r.AppointmentID, err)
	}
}
