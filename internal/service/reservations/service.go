package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations/models"
)

// Service сервис чтения записей по представлениям мастерской и клиента
type Service struct {
	store  Store
	logger Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(store Store, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// ListByShop возвращает записи мастерской в хронологическом порядке.
// Пустая дата - все записи мастерской.
func (s *Service) ListByShop(ctx context.Context, shopID, date string) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByShop: shop=%q, date=%q", shopID, date)

	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return nil, fmt.Errorf("%w: shop id is required", ErrInvalidInput)
	}
	prefix, err := datePrefix(date)
	if err != nil {
		s.logger.Warn("ListByShop: %v", err)
		return nil, err
	}

	list, err := s.list(ctx, domain.ShopPartition(shopID), prefix)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListByShop: shop=%s found=%d", shopID, len(list))
	return models.FromDomainReservations(list), nil
}

// ListByCustomer возвращает все записи клиента в хронологическом порядке
func (s *Service) ListByCustomer(ctx context.Context, phone string) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByCustomer: phone=%q", phone)

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	list, err := s.list(ctx, domain.CustomerPartition(phone), domain.AppointmentKeyPrefix)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListByCustomer: phone=%s found=%d", phone, len(list))
	return models.FromDomainReservations(list), nil
}

// GetByID возвращает запись мастерской по ID
func (s *Service) GetByID(ctx context.Context, shopID, appointmentID string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: shop=%q, id=%q", shopID, appointmentID)

	shopID = strings.TrimSpace(shopID)
	appointmentID = strings.ToUpper(strings.TrimSpace(appointmentID))
	if shopID == "" || appointmentID == "" {
		return nil, fmt.Errorf("%w: shop id and appointment id are required", ErrInvalidInput)
	}

	list, err := s.list(ctx, domain.ShopPartition(shopID), domain.AppointmentKeyPrefix)
	if err != nil {
		return nil, err
	}

	for _, r := range list {
		if r.AppointmentID == appointmentID {
			resp := models.FromDomainReservation(r)
			return &resp, nil
		}
	}

	s.logger.Warn("GetByID: shop=%s id=%s not found", shopID, appointmentID)
	return nil, fmt.Errorf("%w: id=%s", ErrNotFound, appointmentID)
}

// AuditViews сверяет представления мастерской и клиента за день и только сообщает о расхождениях.
// Записи клиента без пары находятся для клиентов, встреченных в представлении мастерской,
// и для явно переданных телефонов.
func (s *Service) AuditViews(ctx context.Context, shopID, date string, phones ...string) (*models.AuditReport, error) {
	s.logger.Info("AuditViews: shop=%q, date=%q", shopID, date)

	shopID = strings.TrimSpace(shopID)
	if shopID == "" || strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("%w: shop id and date are required", ErrInvalidInput)
	}
	prefix, err := datePrefix(date)
	if err != nil {
		return nil, err
	}

	report := &models.AuditReport{
		ShopID:              shopID,
		Date:                date,
		MissingCustomerView: make([]models.ReservationResponse, 0),
		MissingShopView:     make([]models.ReservationResponse, 0),
	}

	// 1. Представление мастерской: у каждой записи должна быть пара у клиента
	shopItems, err := s.query(ctx, domain.ShopPartition(shopID), prefix)
	if err != nil {
		return nil, err
	}

	shopKeys := make(map[string]struct{}, len(shopItems))
	customers := make(map[string]struct{})
	for _, phone := range phones {
		if phone = strings.TrimSpace(phone); phone != "" {
			customers[phone] = struct{}{}
		}
	}

	for _, item := range shopItems {
		shopKeys[item.SK] = struct{}{}
		report.Checked++

		r, ok := domain.ReservationFromRecord(item.PK, item.SK, item.Attrs)
		if !ok {
			continue
		}
		if r.CustomerPhone == "" {
			report.MissingCustomerView = append(report.MissingCustomerView, models.FromDomainReservation(r))
			continue
		}
		customers[r.CustomerPhone] = struct{}{}

		found, err := s.exists(ctx, domain.CustomerPartition(r.CustomerPhone), item.SK)
		if err != nil {
			return nil, err
		}
		if !found {
			report.MissingCustomerView = append(report.MissingCustomerView, models.FromDomainReservation(r))
		}
	}

	// 2. Представления клиентов: записи этой мастерской без пары в мастерской
	for phone := range customers {
		items, err := s.query(ctx, domain.CustomerPartition(phone), prefix)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Attr(domain.AttrShop) != shopID {
				continue
			}
			report.Checked++
			if _, ok := shopKeys[item.SK]; ok {
				continue
			}
			if r, ok := domain.ReservationFromRecord(item.PK, item.SK, item.Attrs); ok {
				report.MissingShopView = append(report.MissingShopView, models.FromDomainReservation(r))
			}
		}
	}

	if !report.Consistent() {
		s.logger.Warn("AuditViews: shop=%s date=%s diverged: %d without customer view, %d without shop view",
			shopID, date, len(report.MissingCustomerView), len(report.MissingShopView))
	}

	return report, nil
}

func datePrefix(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return domain.AppointmentKeyPrefix, nil
	}
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return "", fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}
	return domain.DatePrefix(date), nil
}

func (s *Service) list(ctx context.Context, pk, prefix string) ([]*domain.Reservation, error) {
	items, err := s.query(ctx, pk, prefix)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Reservation, 0, len(items))
	for _, item := range items {
		if r, ok := domain.ReservationFromRecord(item.PK, item.SK, item.Attrs); ok {
			list = append(list, r)
		}
	}
	return list, nil
}

func (s *Service) query(ctx context.Context, pk, prefix string) ([]kv.Item, error) {
	items, err := s.store.QueryByPrefix(ctx, pk, prefix)
	if err != nil {
		s.logger.Error("query %s %s: %v", pk, prefix, err)
		return nil, fmt.Errorf("%w: query %s: %v", ErrStoreUnavailable, pk, err)
	}
	return items, nil
}

func (s *Service) exists(ctx context.Context, pk, sk string) (bool, error) {
	_, err := s.store.Get(ctx, pk, sk)
	if errors.Is(err, kv.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("get %s/%s: %v", pk, sk, err)
		return false, fmt.Errorf("%w: get %s/%s: %v", ErrStoreUnavailable, pk, sk, err)
	}
	return true, nil
}
