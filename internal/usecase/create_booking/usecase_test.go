package create_booking

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
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/kvtest"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/logger"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

type sequentialIDs struct {
	n int
}

func (g *sequentialIDs) NewID() string {
	g.n++
	return fmt.Sprintf("A-%08X", g.n)
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	store     *kvtest.Recorder
	publisher *recordingPublisher
	uc        *UseCase
}

// newFixture мастерская с часами 09:00-12:00 и шагом 60 минут
func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	store := kvtest.NewRecorder()
	sched := schedule.NewService(store, logger.NewNop())
	require.NoError(t, sched.SetHours(context.Background(), domain.ScheduleConfig{
		OpenTime: "09:00", CloseTime: "12:00", SlotDurationMinutes: 60,
	}))
	store.Reset()

	publisher := &recordingPublisher{}
	return &fixture{
		store:     store,
		publisher: publisher,
		uc:        NewUseCase(store, sched, &sequentialIDs{}, publisher, opts, logger.NewNop()),
	}
}

func validRequest() *Request {
	return &Request{ShopID: "Main", Date: "2024-05-01", Time: "10:00", CustomerPhone: "555"}
}

func TestExecute_BookThenSameSlotIsTaken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	resp, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "A-00000001", resp.AppointmentID)
	assert.Equal(t, "Mantenimiento", resp.Service)
	assert.Equal(t, "Cliente", resp.CustomerName)
	assert.Equal(t, "-", resp.VehiclePlate)
	assert.Equal(t, types.TimeString("10:00"), resp.Time)

	_, err = f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.EventAppointmentBooked, f.publisher.events[0].Type)
}

func TestExecute_WritesBothViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	resp, err := f.uc.Execute(ctx, &Request{
		Date: "2024-05-01", Time: "9:00", CustomerPhone: "555",
		Service: "cambio de aceite", CustomerName: "Ana", VehiclePlate: "ABC123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultShopID, resp.ShopID)
	assert.Equal(t, "Cambio De Aceite", resp.Service)

	sk := domain.AppointmentSortKey("2024-05-01", "09:00", resp.AppointmentID)

	shopView, err := f.store.Get(ctx, "SHOP#Main", sk)
	require.NoError(t, err)
	assert.Equal(t, "555", shopView.Attr(domain.AttrPhone))
	assert.Equal(t, "ABC123", shopView.Attr(domain.AttrPlate))

	customerView, err := f.store.Get(ctx, "CUSTOMER#555", sk)
	require.NoError(t, err)
	assert.Equal(t, "Main", customerView.Attr(domain.AttrShop))
	assert.Equal(t, "Ana", customerView.Attr(domain.AttrName))
}

func TestExecute_OutOfHours(t *testing.T) {
	f := newFixture(t, Options{})

	req := validRequest()
	req.Time = "08:00"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutOfHours)

	req = validRequest()
	req.Time = "12:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err, "close time is bookable")

	assert.Equal(t, 1, f.store.Count(kvtest.OpQueryByPrefix), "out of hours request must not query the slot")
}

func TestExecute_MissingFieldsNeverTouchStore(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "no date", req: &Request{Time: "10:00", CustomerPhone: "555"}},
		{name: "no time", req: &Request{Date: "2024-05-01", CustomerPhone: "555"}},
		{name: "blank phone", req: &Request{Date: "2024-05-01", Time: "10:00", CustomerPhone: "   "}},
		{name: "nothing", req: &Request{}},
		{name: "missing wins over bad format", req: &Request{Date: "01/05/2024", Time: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Empty(t, f.store.Calls())
		})
	}
}

func TestExecute_InvalidFormat(t *testing.T) {
	for _, req := range []*Request{
		{Date: "2024-5-1", Time: "10:00", CustomerPhone: "555"},
		{Date: "2024-05-01", Time: "25:00", CustomerPhone: "555"},
		{Date: "2024-05-01", Time: "10am", CustomerPhone: "555"},
		{Date: "2024-05-01", Time: "10:00", CustomerPhone: "55#5"},
	} {
		f := newFixture(t, Options{})
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidFormat, "%+v", req)
		assert.Empty(t, f.store.Calls())
	}
}

func TestExecute_DistinctSlotsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	first, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Time = "11:00"
	second, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.AppointmentID, second.AppointmentID)

	req = validRequest()
	req.ShopID = "Norte"
	third, err := f.uc.Execute(ctx, req)
	require.NoError(t, err, "same slot in another shop is free")
	assert.NotEqual(t, first.AppointmentID, third.AppointmentID)
}

func TestExecute_SequentialWritesExactlyTwoPuts(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, f.store.Count(kvtest.OpPut))
	assert.Equal(t, 0, f.store.Count(kvtest.OpWriteBatch))

	calls := f.store.Calls()
	var puts []kv.Key
	for _, c := range calls {
		if c.Op == kvtest.OpPut {
			puts = append(puts, c.Key)
		}
	}
	assert.Equal(t, "SHOP#Main", puts[0].PK, "shop view is written first")
	assert.Equal(t, "CUSTOMER#555", puts[1].PK)
}

func TestExecute_AtomicViews(t *testing.T) {
	f := newFixture(t, Options{AtomicViews: true})

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.Count(kvtest.OpWriteBatch))
	assert.Equal(t, 0, f.store.Count(kvtest.OpPut))
}

func TestExecute_AtomicViewsFallsBackWhenBatchUnsupported(t *testing.T) {
	f := newFixture(t, Options{AtomicViews: true})
	f.store.DisableBatch()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.Count(kvtest.OpWriteBatch))
	assert.Equal(t, 2, f.store.Count(kvtest.OpPut))
}

func TestExecute_StrictGuardCatchesStaleCollisionCheck(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{StrictSlotGuard: true})

	// гарант занят конкурентной записью, представления которой еще не записаны
	created, err := f.store.PutIfAbsent(ctx, kv.Item{
		PK:    "SHOP#Main",
		SK:    domain.SlotGuardSortKey("2024-05-01", "10:00"),
		Attrs: map[string]string{domain.AttrAppointmentID: "A-RACER000"},
	})
	require.NoError(t, err)
	require.True(t, created)
	f.store.Reset()

	_, err = f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 0, f.store.Count(kvtest.OpPut))
}

func TestExecute_StrictGuardIsWrittenBeforeViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{StrictSlotGuard: true})

	resp, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	guard, err := f.store.Get(ctx, "SHOP#Main", domain.SlotGuardSortKey("2024-05-01", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, resp.AppointmentID, guard.Attr(domain.AttrAppointmentID))

	calls := f.store.Calls()
	ops := make([]kvtest.Operation, 0, len(calls))
	for _, c := range calls {
		ops = append(ops, c.Op)
	}
	// часы мастерской, общие часы, проверка слота, гарант, два представления, чтение гаранта в тесте
	assert.Equal(t, []kvtest.Operation{
		kvtest.OpGet, kvtest.OpGet, kvtest.OpQueryByPrefix, kvtest.OpPutIfAbsent, kvtest.OpPut, kvtest.OpPut, kvtest.OpGet,
	}, ops)
}

func TestExecute_CustomerViewFailureRollsBackShopView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	f.store.FailWith(func(call kvtest.Call) error {
		if call.Op == kvtest.OpPut && call.Key.PK == "CUSTOMER#555" {
			return errors.New("throttled")
		}
		return nil
	})

	_, err := f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	f.store.FailWith(nil)
	items, err := f.store.QueryByPrefix(ctx, "SHOP#Main", domain.AppointmentKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_ViewsDivergedIsPublished(t *testing.T) {
	f := newFixture(t, Options{})
	f.store.FailWith(func(call kvtest.Call) error {
		if call.Key.PK == "CUSTOMER#555" || call.Op == kvtest.OpDelete {
			return errors.New("throttled")
		}
		return nil
	})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.EventViewsDiverged, f.publisher.events[0].Type)
}

func TestExecute_StoreAndConfigFailures(t *testing.T) {
	f := newFixture(t, Options{})
	f.store.FailWith(func(call kvtest.Call) error {
		if call.Op == kvtest.OpQueryByPrefix {
			return errors.New("timeout")
		}
		return nil
	})
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	f = newFixture(t, Options{})
	require.NoError(t, f.store.Put(context.Background(), kv.Item{
		PK: domain.ConfigPartition, SK: domain.GlobalHoursSortKey,
		Attrs: map[string]string{"open": "09:00", "close": "noon"},
	}))
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestUUIDGenerator(t *testing.T) {
	pattern := regexp.MustCompile(`^A-[0-9A-F]{8}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := UUIDGenerator{}.NewID()
		assert.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
