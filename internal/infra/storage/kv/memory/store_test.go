package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

func item(pk, sk string) kv.Item {
	return kv.Item{PK: pk, SK: sk, Attrs: map[string]string{"sk": sk}}
}

func TestStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1")
	require.ErrorIs(t, err, kv.ErrItemNotFound)

	require.NoError(t, s.Put(ctx, item("SHOP#Main", "APPT#2024-05-01#10:00#A-1")))

	got, err := s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1")
	require.NoError(t, err)
	assert.Equal(t, "APPT#2024-05-01#10:00#A-1", got.Attr("sk"))

	// изменение возвращенной копии не затрагивает хранилище
	got.Attrs["sk"] = "mutated"
	again, err := s.Get(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1")
	require.NoError(t, err)
	assert.Equal(t, "APPT#2024-05-01#10:00#A-1", again.Attr("sk"))

	require.NoError(t, s.Delete(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1"))
	require.NoError(t, s.Delete(ctx, "SHOP#Main", "APPT#2024-05-01#10:00#A-1"))
	assert.Equal(t, 0, s.Len())
}

func TestStore_QueryByPrefixIsOrdered(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, sk := range []string{
		"APPT#2024-05-02#09:00#A-3",
		"APPT#2024-05-01#11:00#A-2",
		"APPT#2024-05-01#09:00#A-1",
		"SLOT#2024-05-01#09:00",
	} {
		require.NoError(t, s.Put(ctx, item("SHOP#Main", sk)))
	}
	require.NoError(t, s.Put(ctx, item("SHOP#Other", "APPT#2024-05-01#09:00#A-9")))

	items, err := s.QueryByPrefix(ctx, "SHOP#Main", "APPT#2024-05-01#")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "APPT#2024-05-01#09:00#A-1", items[0].SK)
	assert.Equal(t, "APPT#2024-05-01#11:00#A-2", items[1].SK)

	items, err = s.QueryByPrefix(ctx, "SHOP#Main", "APPT#")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = s.QueryByPrefix(ctx, "SHOP#Missing", "APPT#")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_PutIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	created, err := s.PutIfAbsent(ctx, item("SHOP#Main", "SLOT#2024-05-01#10:00"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.PutIfAbsent(ctx, item("SHOP#Main", "SLOT#2024-05-01#10:00"))
	require.NoError(t, err)
	assert.False(t, created)
}

func TestStore_WriteBatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Put(ctx, item("CUSTOMER#555", "APPT#old")))

	err := s.WriteBatch(ctx,
		[]kv.Item{item("SHOP#Main", "APPT#new"), item("CUSTOMER#555", "APPT#new")},
		[]kv.Key{{PK: "CUSTOMER#555", SK: "APPT#old"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	err = s.WriteBatch(ctx, []kv.Item{item("SHOP#Main", "APPT#x"), {PK: "", SK: "x"}}, nil)
	require.ErrorIs(t, err, kv.ErrInvalidKey)
	assert.Equal(t, 2, s.Len(), "invalid batch must not be partially applied")
}

func TestStore_InvalidKey(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	assert.ErrorIs(t, s.Put(ctx, kv.Item{PK: "SHOP#Main"}), kv.ErrInvalidKey)
	_, err := s.QueryByPrefix(ctx, "", "APPT#")
	assert.ErrorIs(t, err, kv.ErrInvalidKey)
}
