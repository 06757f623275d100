package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "hotel-ops:ratelimit"), mr
}

func TestRedisStore_RechazaSinIncrementarPasadoElLimite(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := store.Check(ctx, "pin:10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "intento %d", i+1)
	}

	for i := 0; i < 2; i++ {
		ok, err := store.Check(ctx, "pin:10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	got, err := mr.Get("hotel-ops:ratelimit:pin:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "3", got, "los intentos rechazados no suman al contador")
}

func TestRedisStore_VentanaArrancaConElPrimerIntento(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	ok, err := store.Check(ctx, "pin:10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("hotel-ops:ratelimit:pin:10.0.0.1"))

	mr.FastForward(30 * time.Second)
	ok, err = store.Check(ctx, "pin:10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 30*time.Second, mr.TTL("hotel-ops:ratelimit:pin:10.0.0.1"), "un rechazo no extiende la ventana")

	mr.FastForward(30 * time.Second)
	ok, err = store.Check(ctx, "pin:10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "vencida la ventana se vuelve a permitir")
}

func TestRedisStore_ClavesIndependientes(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	ok, err := store.Check(ctx, "pin:10.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Check(ctx, "pin:10.0.0.2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_ServidorCaidoDevuelveError(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	ok, err := store.Check(context.Background(), "pin:10.0.0.1", 3, time.Minute)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "ratelimit: redis check")
}
