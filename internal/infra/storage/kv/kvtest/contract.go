package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Factory создает пустое хранилище для одного подтеста
type Factory func(t *testing.T) kv.Store

// ContractOptions особенности конкретного бэкенда
type ContractOptions struct {
	// BatchUnsupported бэкенд обязан отвечать kv.ErrBatchUnsupported на любой WriteBatch
	BatchUnsupported bool
}

// RunStoreContract проверяет поведение, на которое опираются движки записи и отмены.
// Каждый подтест получает свое хранилище из newStore.
func RunStoreContract(t *testing.T, newStore Factory, opts ContractOptions) {
	t.Helper()

	t.Run("get after put", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1")
		require.ErrorIs(t, err, kv.ErrItemNotFound)

		require.NoError(t, s.Put(ctx, kv.Item{
			PK:    "SHOP#Main",
			SK:    "APPT#2024-05-01#10:00#A-1",
			Attrs: map[string]string{"phone": "555", "service": "Cambio De Aceite"},
		}))

		got, err := s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1")
		require.NoError(t, err)
		assert.Equal(t, "SHOP#Main", got.PK)
		assert.Equal(t, "APPT#2024-05-01#10:00#A-1", got.SK)
		assert.Equal(t, map[string]string{"phone": "555", "service": "Cambio De Aceite"}, got.Attrs)

		// put перезаписывает атрибуты целиком
		require.NoError(t, s.Put(ctx, kv.Item{
			PK:    "SHOP#Main",
			SK:    "APPT#2024-05-01#10:00#A-1",
			Attrs: map[string]string{"phone": "777"},
		}))
		got, err = s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"phone": "777"}, got.Attrs)

		_, err = s.Get(ctx, "SHOP#Other", "APPT#2024-05-01#10:00#A-1")
		assert.ErrorIs(t, err, kv.ErrItemNotFound)
	})

	t.Run("nil attributes", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Put(ctx, kv.Item{PK: "INFO", SK: "HOURS"}))

		got, err := s.Get(ctx, "INFO", "HOURS")
		require.NoError(t, err)
		assert.NotNil(t, got.Attrs)
		assert.Empty(t, got.Attrs)
	})

	t.Run("put if absent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		created, err := s.PutIfAbsent(ctx, kv.Item{
			PK:    "SHOP#Main",
			SK:    "SLOT#2024-05-01#10:00",
			Attrs: map[string]string{"appointmentId": "A-1"},
		})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = s.PutIfAbsent(ctx, kv.Item{
			PK:    "SHOP#Main",
			SK:    "SLOT#2024-05-01#10:00",
			Attrs: map[string]string{"appointmentId": "A-2"},
		})
		require.NoError(t, err)
		assert.False(t, created)

		got, err := s.Get(ctx, "SHOP#Main", "SLOT#2024-05-01#10:00")
		require.NoError(t, err)
		assert.Equal(t, "A-1", got.Attr("appointmentId"), "losing writer must not overwrite the guard")

		// тот же ключ сортировки в другой партиции свободен
		created, err = s.PutIfAbsent(ctx, kv.Item{PK: "SHOP#Other", SK: "SLOT#2024-05-01#10:00"})
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, s.Delete(ctx, "SHOP#Main", "SLOT#2024-05-01#10:00"))
		created, err = s.PutIfAbsent(ctx, kv.Item{PK: "SHOP#Main", SK: "SLOT#2024-05-01#10:00"})
		require.NoError(t, err)
		assert.True(t, created, "released guard can be taken again")
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Put(ctx, kv.Item{PK: "CUSTOMER#555", SK: "APPT#2024-05-01#10:00#A-1"}))
		require.NoError(t, s.Delete(ctx, "CUSTOMER#555", "APPT#2024-05-01#10:00#A-1"))
		require.NoError(t, s.Delete(ctx, "CUSTOMER#555", "APPT#2024-05-01#10:00#A-1"))

		_, err := s.Get(ctx, "CUSTOMER#555", "APPT#2024-05-01#10:00#A-1")
		assert.ErrorIs(t, err, kv.ErrItemNotFound)

		items, err := s.QueryByPrefix(ctx, "CUSTOMER#555", "APPT#")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("query by prefix", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		// порядок вставки намеренно перемешан
		for _, sk := range []string{
			"APPT#2024-05-02#08:00#A-5",
			"APPT#2024-05-01#10:00#a-9",
			"APPT#2024-05-01#10:00#B-0",
			"APPT#2024-05-01#09:30#A-1",
			"APPT#2024-05-01#10:00#A-2",
			"APPT#2024-05-01",
			"APPT#2024-05-01$",
			"APPT#2024-05-010#09:00#A-7",
			"SLOT#2024-05-01#09:30",
		} {
			require.NoError(t, s.Put(ctx, kv.Item{PK: "SHOP#Main", SK: sk, Attrs: map[string]string{"sk": sk}}))
		}
		require.NoError(t, s.Put(ctx, kv.Item{PK: "SHOP#Mainline", SK: "APPT#2024-05-01#09:00#A-8"}))
		require.NoError(t, s.Put(ctx, kv.Item{PK: "SHOP#Other", SK: "APPT#2024-05-01#09:00#A-6"}))

		items, err := s.QueryByPrefix(ctx, "SHOP#Main", "APPT#2024-05-01#")
		require.NoError(t, err)
		// побайтовый порядок: заглавные буквы раньше строчных
		assert.Equal(t, []string{
			"APPT#2024-05-01#09:30#A-1",
			"APPT#2024-05-01#10:00#A-2",
			"APPT#2024-05-01#10:00#B-0",
			"APPT#2024-05-01#10:00#a-9",
		}, sortKeys(items))
		for _, item := range items {
			assert.Equal(t, "SHOP#Main", item.PK)
			assert.Equal(t, item.SK, item.Attr("sk"))
		}

		items, err = s.QueryByPrefix(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#")
		require.NoError(t, err)
		assert.Len(t, items, 3)

		items, err = s.QueryByPrefix(ctx, "SHOP#Main", "SLOT#")
		require.NoError(t, err)
		assert.Equal(t, []string{"SLOT#2024-05-01#09:30"}, sortKeys(items))

		items, err = s.QueryByPrefix(ctx, "SHOP#Main", "")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"APPT#2024-05-01",
			"APPT#2024-05-01#09:30#A-1",
			"APPT#2024-05-01#10:00#A-2",
			"APPT#2024-05-01#10:00#B-0",
			"APPT#2024-05-01#10:00#a-9",
			"APPT#2024-05-01$",
			"APPT#2024-05-010#09:00#A-7",
			"APPT#2024-05-02#08:00#A-5",
			"SLOT#2024-05-01#09:30",
		}, sortKeys(items))

		items, err = s.QueryByPrefix(ctx, "SHOP#Missing", "APPT#")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("write batch", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Put(ctx, kv.Item{PK: "CUSTOMER#555", SK: "APPT#2024-05-01#09:00#A-OLD"}))

		puts := []kv.Item{
			{PK: "SHOP#Main", SK: "APPT#2024-05-01#10:00#A-NEW", Attrs: map[string]string{"phone": "555"}},
			{PK: "CUSTOMER#555", SK: "APPT#2024-05-01#10:00#A-NEW", Attrs: map[string]string{"shopId": "Main"}},
		}
		deletes := []kv.Key{{PK: "CUSTOMER#555", SK: "APPT#2024-05-01#09:00#A-OLD"}}

		err := s.WriteBatch(ctx, puts, deletes)
		if opts.BatchUnsupported {
			require.ErrorIs(t, err, kv.ErrBatchUnsupported)

			_, err = s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-NEW")
			assert.ErrorIs(t, err, kv.ErrItemNotFound, "unsupported batch must not write anything")
			_, err = s.Get(ctx, "CUSTOMER#555", "APPT#2024-05-01#09:00#A-OLD")
			assert.NoError(t, err, "unsupported batch must not delete anything")
			return
		}
		require.NoError(t, err)

		shopView, err := s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-NEW")
		require.NoError(t, err)
		assert.Equal(t, "555", shopView.Attr("phone"))

		items, err := s.QueryByPrefix(ctx, "CUSTOMER#555", "APPT#")
		require.NoError(t, err)
		assert.Equal(t, []string{"APPT#2024-05-01#10:00#A-NEW"}, sortKeys(items))
	})

	if !opts.BatchUnsupported {
		t.Run("write batch is all or nothing", func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			require.NoError(t, s.Put(ctx, kv.Item{PK: "CUSTOMER#555", SK: "APPT#2024-05-01#09:00#A-OLD"}))

			err := s.WriteBatch(ctx,
				[]kv.Item{
					{PK: "SHOP#Main", SK: "APPT#2024-05-01#10:00#A-NEW"},
					{PK: "", SK: "APPT#2024-05-01#10:00#A-NEW"},
				},
				[]kv.Key{{PK: "CUSTOMER#555", SK: "APPT#2024-05-01#09:00#A-OLD"}},
			)
			require.ErrorIs(t, err, kv.ErrInvalidKey)

			_, err = s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-NEW")
			assert.ErrorIs(t, err, kv.ErrItemNotFound, "rejected batch must not be partially applied")
			_, err = s.Get(ctx, "CUSTOMER#555", "APPT#2024-05-01#09:00#A-OLD")
			assert.NoError(t, err, "rejected batch must not delete anything")
		})
	}

	t.Run("invalid keys", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Get(ctx, "", "HOURS")
		assert.ErrorIs(t, err, kv.ErrInvalidKey)
		assert.ErrorIs(t, s.Put(ctx, kv.Item{PK: "INFO"}), kv.ErrInvalidKey)
		_, err = s.PutIfAbsent(ctx, kv.Item{SK: "SLOT#2024-05-01#10:00"})
		assert.ErrorIs(t, err, kv.ErrInvalidKey)
		assert.ErrorIs(t, s.Delete(ctx, "SHOP#Main", ""), kv.ErrInvalidKey)
		_, err = s.QueryByPrefix(ctx, "", "APPT#")
		assert.ErrorIs(t, err, kv.ErrInvalidKey)
	})
}

func sortKeys(items []kv.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.SK)
	}
	return out
}
