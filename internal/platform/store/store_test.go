package store

import (
	"context"
	"log/slog"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	st, err := NewRedis(context.Background(), client)
	require.NoError(t, err)
	return st
}

func TestRedisLoadAbsent(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Load(context.Background(), KeyProducts)
	require.ErrorIs(t, err, ErrAbsent)
}

func TestRedisSaveReplacesWholeValue(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, KeyInvoices, `[{"id":"1"}]`))
	require.NoError(t, st.Save(ctx, KeyInvoices, `[{"id":"2"}]`))

	val, err := st.Load(ctx, KeyInvoices)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"2"}]`, val)
}

type record struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

func TestCollectionRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	coll := NewCollection[record](st, KeyProducts, slog.Default())

	in := []record{
		{ID: "1", Name: "Basmati Rice", Rate: 100},
		{ID: "2", Name: "Wheat Flour", Rate: 45},
	}
	require.NoError(t, coll.Replace(ctx, in))

	out, err := coll.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestCollectionCorruptDataFallsBackToEmpty(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, KeyPayments, `{not json`))

	coll := NewCollection[record](st, KeyPayments, slog.Default())
	out, err := coll.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestCollectionUpdateAppends(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	coll := NewCollection[record](st, KeyProducts, slog.Default())

	err := coll.Update(ctx, func(items []record) ([]record, error) {
		return append(items, record{ID: "1", Name: "Sugar", Rate: 40}), nil
	})
	require.NoError(t, err)

	err = coll.Update(ctx, func(items []record) ([]record, error) {
		require.Len(t, items, 1)
		return append(items, record{ID: "2", Name: "Salt", Rate: 20}), nil
	})
	require.NoError(t, err)

	out, err := coll.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Sugar", out[0].Name)
}
