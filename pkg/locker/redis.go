package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript удаляет ключ, только если он всё ещё принадлежит владельцу
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis распределённая блокировка (SET NX PX) для нескольких инстансов сервиса
type Redis struct {
	client        *redis.Client
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	log           Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

func NewRedis(client *redis.Client, prefix string, ttl, retryInterval time.Duration, log Logger) *Redis {
	return &Redis{
		client:        client,
		prefix:        prefix,
		ttl:           ttl,
		retryInterval: retryInterval,
		log:           log,
	}
}

// Lock повторяет попытки захвата, пока ключ занят и ctx не отменён
// TTL страхует от зависших блокировок упавших инстансов
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockNotAcquired, fullKey, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockNotAcquired, fullKey, ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		// Снимаем блокировку даже если исходный контекст уже отменён
		unlockCtx, cancel := context.WithTimeout(context.Background(), r.ttl)
		defer cancel()
		if err := unlockScript.Run(unlockCtx, r.client, []string{fullKey}, token).Err(); err != nil {
			r.log.Warn("Failed to release redis lock key=%s: %v", fullKey, err)
		}
	}, nil
}
