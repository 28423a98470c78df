package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/kvtest"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/logger"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

func newUseCase(t *testing.T) (*UseCase, *kvtest.Recorder) {
	t.Helper()
	store := kvtest.NewRecorder()
	sched := schedule.NewService(store, logger.NewNop())
	require.NoError(t, sched.SetHours(context.Background(), domain.ScheduleConfig{
		OpenTime: "09:00", CloseTime: "12:00", SlotDurationMinutes: 60,
	}))
	store.Reset()
	return NewUseCase(store, sched, "", logger.NewNop()), store
}

func book(t *testing.T, store kv.Store, shopID, date, startTime, id string) {
	t.Helper()
	r := domain.Reservation{AppointmentID: id, ShopID: shopID, Date: date, Time: types.TimeString(startTime), CustomerPhone: "555"}
	for _, view := range []domain.ReservationView{domain.ViewShop, domain.ViewCustomer} {
		require.NoError(t, store.Put(context.Background(), kv.Item{PK: r.PartitionKey(view), SK: r.SortKey(), Attrs: r.Attributes()}))
	}
}

func TestExecute_ExcludesTakenSlots(t *testing.T) {
	uc, store := newUseCase(t)
	book(t, store, "Main", "2024-05-01", "10:00", "A-00000001")
	book(t, store, "Main", "2024-05-02", "11:00", "A-00000002")
	book(t, store, "Norte", "2024-05-01", "09:00", "A-00000003")

	resp, err := uc.Execute(context.Background(), &Request{ShopID: "Main", Date: "2024-05-01"})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "11:00", "12:00"}, resp.Free)
	assert.Equal(t, []types.TimeString{"10:00"}, resp.Taken)
	assert.False(t, resp.IsFullyBooked())
}

func TestExecute_DefaultShop(t *testing.T) {
	uc, store := newUseCase(t)
	book(t, store, domain.DefaultShopID, "2024-05-01", "09:00", "A-00000001")

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultShopID, resp.ShopID)
	assert.NotContains(t, resp.Free, types.TimeString("09:00"))
}

func TestExecute_FullyBookedIsNotAnError(t *testing.T) {
	uc, store := newUseCase(t)
	for i, slot := range []string{"09:00", "10:00", "11:00", "12:00"} {
		book(t, store, "Main", "2024-05-01", slot, fmt.Sprintf("A-%08d", i+1))
	}

	resp, err := uc.Execute(context.Background(), &Request{ShopID: "Main", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Empty(t, resp.Free)
	assert.True(t, resp.IsFullyBooked())
}

func TestExecute_Validation(t *testing.T) {
	uc, store := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{ShopID: "Main"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = uc.Execute(context.Background(), &Request{ShopID: "Main", Date: "2024/05/01"})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	assert.Empty(t, store.Calls())
}

func TestExecute_Failures(t *testing.T) {
	uc, store := newUseCase(t)
	store.FailWith(func(call kvtest.Call) error {
		if call.Op == kvtest.OpQueryByPrefix {
			return errors.New("timeout")
		}
		return nil
	})
	_, err := uc.Execute(context.Background(), &Request{Date: "2024-05-01"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	uc, store = newUseCase(t)
	require.NoError(t, store.Put(context.Background(), kv.Item{
		PK: domain.ConfigPartition, SK: domain.GlobalHoursSortKey,
		Attrs: map[string]string{"open": "09:00", "close": "12:00", "slotMinutes": "0"},
	}))
	_, err = uc.Execute(context.Background(), &Request{Date: "2024-05-01"})
	assert.ErrorIs(t, err, ErrConfigInvalid)
}
