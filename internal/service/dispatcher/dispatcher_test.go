package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/events"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/kvtest"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/logger"
)

type outcomeRecorder struct {
	outcomes []string
}

func (r *outcomeRecorder) IncIntentOutcome(intent, outcome string) {
	r.outcomes = append(r.outcomes, intent+":"+outcome)
}

type fixedIDs struct {
	n int
}

func (g *fixedIDs) NewID() string {
	g.n++
	return fmt.Sprintf("A-%08X", g.n)
}

type fixture struct {
	store      *kvtest.Recorder
	metrics    *outcomeRecorder
	dispatcher *Dispatcher
}

func newFixture(t *testing.T, cfg *domain.ScheduleConfig) *fixture {
	t.Helper()

	store := kvtest.NewRecorder()
	log := logger.NewNop()
	sched := schedule.NewService(store, log)
	if cfg != nil {
		require.NoError(t, sched.SetHours(context.Background(), *cfg))
	}

	publisher := events.NewNoop()
	metrics := &outcomeRecorder{}
	d := NewDispatcher(
		create_booking.NewUseCase(store, sched, &fixedIDs{}, publisher, create_booking.Options{}, log),
		cancel_booking.NewUseCase(store, publisher, cancel_booking.Options{}, log),
		get_available_slots.NewUseCase(store, sched, "", log),
		sched,
		metrics,
		log,
		"",
		0,
	)
	return &fixture{store: store, metrics: metrics, dispatcher: d}
}

func morningHours() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{OpenTime: "09:00", CloseTime: "12:00", SlotDurationMinutes: 60}
}

func intent(name domain.IntentName, slots map[string]string) domain.Intent {
	return domain.Intent{Name: name, Slots: slots}
}

func content(t *testing.T, resp *domain.Response) string {
	t.Helper()
	assert.Equal(t, domain.FulfillmentFulfilled, resp.FulfillmentState)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, domain.ContentTypePlainText, resp.Messages[0].ContentType)
	return resp.Messages[0].Content
}

func booking(date, time, phone string) domain.Intent {
	return intent(domain.IntentMakeBooking, map[string]string{
		domain.SlotShopID: "Main", domain.SlotDate: date, domain.SlotTime: time, domain.SlotPhone: phone,
	})
}

func TestDispatch_BookingScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, morningHours())

	// бронирование
	got := content(t, f.dispatcher.Dispatch(ctx, booking("2024-05-01", "10:00", "555")))
	assert.Equal(t, "Listo Cliente. Reservé Mantenimiento el 2024-05-01 a las 10:00. Tu ID es A-00000001.", got)

	// повторное бронирование того же слота
	got = content(t, f.dispatcher.Dispatch(ctx, booking("2024-05-01", "10:00", "777")))
	assert.Equal(t, "Ese horario ya está tomado. ¿Quieres otro?", got)

	// свободные слоты без занятого
	got = content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCheckAvailability, map[string]string{
		domain.SlotShopID: "Main", domain.SlotDate: "2024-05-01",
	})))
	assert.Equal(t, "Disponibilidad para Mantenimiento el 2024-05-01: 09:00, 11:00, 12:00.", got)

	// отмена по телефону и дате освобождает слот
	got = content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCancelBooking, map[string]string{
		domain.SlotPhone: "555", domain.SlotDate: "2024-05-01",
	})))
	assert.Equal(t, "Cita cancelada.", got)

	got = content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCheckAvailability, map[string]string{
		domain.SlotDate: "2024-05-01", domain.SlotService: "cambio de aceite",
	})))
	assert.Equal(t, "Disponibilidad para Cambio De Aceite el 2024-05-01: 09:00, 10:00, 11:00, 12:00.", got)

	assert.Equal(t, []string{
		"MakeBooking:success",
		"MakeBooking:slot_taken",
		"CheckAvailability:success",
		"CancelBooking:success",
		"CheckAvailability:success",
	}, f.metrics.outcomes)
}

func TestDispatch_BookingFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, morningHours())

	got := content(t, f.dispatcher.Dispatch(ctx, booking("2024-05-01", "08:00", "555")))
	assert.Equal(t, "Nuestro horario es 09:00 a 12:00.", got)

	got = content(t, f.dispatcher.Dispatch(ctx, booking("", "10:00", "555")))
	assert.Equal(t, "Me faltan datos (fecha, hora y teléfono).", got)

	got = content(t, f.dispatcher.Dispatch(ctx, booking("01-05-2024", "10:00", "555")))
	assert.Equal(t, "La fecha debe tener formato AAAA-MM-DD y la hora HH:MM.", got)
}

func TestDispatch_CustomBookingFields(t *testing.T) {
	f := newFixture(t, nil)

	got := content(t, f.dispatcher.Dispatch(context.Background(), intent(domain.IntentMakeBooking, map[string]string{
		domain.SlotDate: "2024-05-01", domain.SlotTime: "9:30", domain.SlotPhone: "555",
		domain.SlotName: "Ana", domain.SlotService: "alineación", domain.SlotPlate: "XYZ-987",
	})))
	assert.Regexp(t, regexp.MustCompile(`^Listo Ana\. Reservé Alineación el 2024-05-01 a las 09:30\. Tu ID es A-[0-9A-F]{8}\.$`), got)
}

func TestDispatch_CancelOutcomes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	got := content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCancelBooking, map[string]string{domain.SlotPhone: "555"})))
	assert.Equal(t, "Indica el ID de la cita, o teléfono y fecha.", got)

	got = content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCancelBooking, map[string]string{domain.SlotAppointmentID: "A-DEADBEEF"})))
	assert.Equal(t, "No encontré la cita a cancelar.", got)

	content(t, f.dispatcher.Dispatch(ctx, booking("2024-05-01", "10:00", "555")))
	got = content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCancelBooking, map[string]string{domain.SlotAppointmentID: "A-00000001"})))
	assert.Equal(t, "Cita cancelada.", got)

	got = content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCancelBooking, map[string]string{domain.SlotAppointmentID: "A-00000001"})))
	assert.Equal(t, "No encontré la cita a cancelar.", got)
}

func TestDispatch_AvailabilityOutcomes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &domain.ScheduleConfig{OpenTime: "09:00", CloseTime: "10:00", SlotDurationMinutes: 60})

	got := content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCheckAvailability, nil)))
	assert.Equal(t, "¿Para qué fecha necesitas disponibilidad?", got)

	content(t, f.dispatcher.Dispatch(ctx, booking("2024-05-01", "09:00", "555")))
	content(t, f.dispatcher.Dispatch(ctx, booking("2024-05-01", "10:00", "555")))

	got = content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentCheckAvailability, map[string]string{domain.SlotDate: "2024-05-01"})))
	assert.Equal(t, "No hay horarios disponibles el 2024-05-01.", got)
}

func TestDispatch_AvailabilityListsAtMostTenSlots(t *testing.T) {
	f := newFixture(t, nil)

	got := content(t, f.dispatcher.Dispatch(context.Background(), intent(domain.IntentCheckAvailability, map[string]string{domain.SlotDate: "2024-05-01"})))
	assert.Equal(t, "Disponibilidad para Mantenimiento el 2024-05-01: 09:00, 09:30, 10:00, 10:30, 11:00, 11:30, 12:00, 12:30, 13:00, 13:30.", got)
}

func TestDispatch_OpeningHoursAndUnknown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	got := content(t, f.dispatcher.Dispatch(ctx, intent(domain.IntentOpeningHours, nil)))
	assert.Equal(t, "Atendemos de 09:00 a 18:00.", got)

	got = content(t, f.dispatcher.Dispatch(ctx, intent("OrderPizza", nil)))
	assert.Equal(t, "Puedo ayudarte a reservar, cancelar, ver horarios y disponibilidad.", got)

	assert.Equal(t, []string{"OpeningHours:success", "OrderPizza:unknown_intent"}, f.metrics.outcomes)
}

func TestDispatch_StoreFailureIsApologyNotError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.store.FailWith(func(kvtest.Call) error { return errors.New("connection reset") })

	for _, in := range []domain.Intent{
		booking("2024-05-01", "10:00", "555"),
		intent(domain.IntentCancelBooking, map[string]string{domain.SlotAppointmentID: "A-00000001"}),
		intent(domain.IntentCheckAvailability, map[string]string{domain.SlotDate: "2024-05-01"}),
		intent(domain.IntentOpeningHours, nil),
	} {
		got := content(t, f.dispatcher.Dispatch(ctx, in))
		assert.Equal(t, "Lo siento, tuvimos un problema técnico. Intenta de nuevo en unos minutos.", got, in.Name)
	}

	// следующий вызов после сбоя обрабатывается как обычно
	f.store.FailWith(nil)
	got := content(t, f.dispatcher.Dispatch(ctx, booking("2024-05-01", "10:00", "555")))
	assert.Contains(t, got, "Listo Cliente.")
}
