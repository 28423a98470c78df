package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/get_available_slots"
)

// Dispatcher направляет интент в нужный use case и превращает результат в фразу на испанском.
// Ответ всегда Fulfilled: ошибки передаются только текстом.
type Dispatcher struct {
	createBooking  CreateBookingUseCase
	cancelBooking  CancelBookingUseCase
	availableSlots GetAvailableSlotsUseCase
	schedule       ScheduleResolver
	metrics        MetricsCollector
	logger         Logger

	defaultShopID  string
	maxListedSlots int
}

// NewDispatcher создает новый экземпляр диспетчера
func NewDispatcher(
	createBooking CreateBookingUseCase,
	cancelBooking CancelBookingUseCase,
	availableSlots GetAvailableSlotsUseCase,
	schedule ScheduleResolver,
	metrics MetricsCollector,
	logger Logger,
	defaultShopID string,
	maxListedSlots int,
) *Dispatcher {
	if defaultShopID == "" {
		defaultShopID = domain.DefaultShopID
	}
	if maxListedSlots <= 0 {
		maxListedSlots = domain.DefaultMaxListedSlots
	}
	return &Dispatcher{
		createBooking:  createBooking,
		cancelBooking:  cancelBooking,
		availableSlots: availableSlots,
		schedule:       schedule,
		metrics:        metrics,
		logger:         logger,
		defaultShopID:  defaultShopID,
		maxListedSlots: maxListedSlots,
	}
}

// Dispatch обрабатывает один интент
func (d *Dispatcher) Dispatch(ctx context.Context, intent domain.Intent) *domain.Response {
	var content, outcome string

	switch intent.Name {
	case domain.IntentMakeBooking:
		content, outcome = d.makeBooking(ctx, intent)
	case domain.IntentCancelBooking:
		content, outcome = d.cancel(ctx, intent)
	case domain.IntentCheckAvailability:
		content, outcome = d.checkAvailability(ctx, intent)
	case domain.IntentOpeningHours:
		content, outcome = d.openingHours(ctx, intent)
	default:
		d.logger.Warn("Dispatch: unknown intent %q", intent.Name)
		content, outcome = msgCapabilities, outcomeUnknownIntent
	}

	d.metrics.IncIntentOutcome(string(intent.Name), outcome)
	return domain.NewResponse(intent.Name, content)
}

func (d *Dispatcher) makeBooking(ctx context.Context, intent domain.Intent) (string, string) {
	req := &create_booking.Request{
		ShopID:        intent.SlotOr(domain.SlotShopID, d.defaultShopID),
		Service:       intent.SlotOr(domain.SlotService, ""),
		Date:          intent.SlotOr(domain.SlotDate, ""),
		Time:          intent.SlotOr(domain.SlotTime, ""),
		CustomerName:  intent.SlotOr(domain.SlotName, ""),
		CustomerPhone: intent.SlotOr(domain.SlotPhone, ""),
		VehiclePlate:  intent.SlotOr(domain.SlotPlate, ""),
	}

	resp, err := d.createBooking.Execute(ctx, req)
	switch {
	case err == nil:
		return fmt.Sprintf(msgBookedFormat, resp.CustomerName, resp.Service, resp.Date, resp.Time, resp.AppointmentID), outcomeSuccess
	case errors.Is(err, create_booking.ErrMissingFields):
		return msgBookingMissingFields, outcomeMissingFields
	case errors.Is(err, create_booking.ErrInvalidFormat):
		return msgInvalidFormat, outcomeInvalidFormat
	case errors.Is(err, create_booking.ErrOutOfHours):
		return d.outOfHours(ctx, req.ShopID), outcomeOutOfHours
	case errors.Is(err, create_booking.ErrSlotTaken):
		return msgSlotTaken, outcomeSlotTaken
	default:
		return d.internalError(intent.Name, err)
	}
}

// outOfHours перечитывает часы: ошибка use case их не несет
func (d *Dispatcher) outOfHours(ctx context.Context, shopID string) string {
	cfg, err := d.schedule.Resolve(ctx, shopID)
	if err != nil {
		d.logger.Error("Dispatch: failed to resolve hours for shop=%s: %v", shopID, err)
		cfg = domain.DefaultScheduleConfig()
	}
	return fmt.Sprintf(msgOutOfHoursFormat, cfg.OpenTime, cfg.CloseTime)
}

func (d *Dispatcher) cancel(ctx context.Context, intent domain.Intent) (string, string) {
	_, err := d.cancelBooking.Execute(ctx, &cancel_booking.Request{
		ShopID:        intent.SlotOr(domain.SlotShopID, d.defaultShopID),
		AppointmentID: intent.SlotOr(domain.SlotAppointmentID, ""),
		CustomerPhone: intent.SlotOr(domain.SlotPhone, ""),
		Date:          intent.SlotOr(domain.SlotDate, ""),
	})
	switch {
	case err == nil:
		return msgCancelled, outcomeSuccess
	case errors.Is(err, cancel_booking.ErrMissingFields):
		return msgCancelMissingFields, outcomeMissingFields
	case errors.Is(err, cancel_booking.ErrInvalidFormat):
		return msgInvalidFormat, outcomeInvalidFormat
	case errors.Is(err, cancel_booking.ErrNotFound):
		return msgCancelNotFound, outcomeNotFound
	default:
		return d.internalError(intent.Name, err)
	}
}

func (d *Dispatcher) checkAvailability(ctx context.Context, intent domain.Intent) (string, string) {
	date := intent.SlotOr(domain.SlotDate, "")
	resp, err := d.availableSlots.Execute(ctx, &get_available_slots.Request{
		ShopID: intent.SlotOr(domain.SlotShopID, d.defaultShopID),
		Date:   date,
	})
	switch {
	case err == nil:
	case errors.Is(err, get_available_slots.ErrMissingFields):
		return msgAvailabilityMissingDate, outcomeMissingFields
	case errors.Is(err, get_available_slots.ErrInvalidFormat):
		return msgInvalidFormat, outcomeInvalidFormat
	default:
		return d.internalError(intent.Name, err)
	}

	if resp.IsFullyBooked() {
		return fmt.Sprintf(msgNoSlotsFormat, resp.Date), outcomeNoSlots
	}

	listed := resp.Free
	if len(listed) > d.maxListedSlots {
		listed = listed[:d.maxListedSlots]
	}
	labels := make([]string, 0, len(listed))
	for _, slot := range listed {
		labels = append(labels, slot.String())
	}

	service := domain.NormalizeService(intent.SlotOr(domain.SlotService, ""))
	return fmt.Sprintf(msgAvailabilityFormat, service, resp.Date, strings.Join(labels, ", ")), outcomeSuccess
}

func (d *Dispatcher) openingHours(ctx context.Context, intent domain.Intent) (string, string) {
	cfg, err := d.schedule.Resolve(ctx, intent.SlotOr(domain.SlotShopID, d.defaultShopID))
	if err != nil {
		return d.internalError(intent.Name, err)
	}
	return fmt.Sprintf(msgOpeningHoursFormat, cfg.OpenTime, cfg.CloseTime), outcomeSuccess
}

func (d *Dispatcher) internalError(intent domain.IntentName, err error) (string, string) {
	d.logger.Error("Dispatch: intent=%s failed: %v", intent, err)
	return msgInternalError, outcomeError
}
