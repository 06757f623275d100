package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript incrementa el contador de forma atómica en Redis.
// La ventana arranca con el primer intento (PEXPIRE) y se reinicia cuando la clave expira.
var fixedWindowScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return 0
end
current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 1
`)

// RedisStore contador compartido entre instancias del servicio.
type RedisStore struct {
	client redis.Scripter
	prefix string
}

// NewRedisStore construye el store. prefix separa las claves de distintos limitadores.
func NewRedisStore(client redis.Scripter, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Check evalúa el script de ventana fija para key.
func (s *RedisStore) Check(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, s.client,
		[]string{s.prefix + ":" + key},
		limit, window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("ratelimit: redis check: %w", err)
	}
	return res == 1, nil
}
