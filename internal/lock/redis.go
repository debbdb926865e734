package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"catalog_writer/internal/domain"
)

const pollInterval = 200 * time.Millisecond

// release deletes the key only while it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// refresh extends the expiry only while the key still holds our token.
var refresh = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Redis is a lock shared by every replica pointing at the same server. The
// key expires after ttl so a crashed holder cannot block the pipeline forever;
// a live holder pushes the expiry forward every ttl/3.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis(client *redis.Client, key string, ttl time.Duration, logger *slog.Logger) *Redis {
	return &Redis{
		client: client,
		key:    key,
		ttl:    ttl,
		logger: logger.With("component", "lock", "key", key),
	}
}

func (r *Redis) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, r.key, token, r.ttl).Result()
		if err != nil && !errors.Is(err, ctx.Err()) {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if ok {
			return r.hold(token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrBusy, ctx.Err())
		case <-ticker.C:
		}
	}
}

// hold keeps the key alive until the returned unlock is called.
func (r *Redis) hold(token string) func() {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		r.keepAlive(token, stop)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			r.unlock(token)
		})
	}
}

func (r *Redis) keepAlive(token string, stop <-chan struct{}) {
	ticker := time.NewTicker(max(r.ttl/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ok, err := r.extend(token)
		if err != nil {
			r.logger.Error("refresh lock failed", "error", err)
			continue
		}
		if !ok {
			r.logger.Warn("lock lost to another holder, no longer refreshing")
			return
		}
	}
}

func (r *Redis) extend(token string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := refresh.Run(ctx, r.client, []string{r.key}, token, r.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *Redis) unlock(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := release.Run(ctx, r.client, []string{r.key}, token).Err(); err != nil {
		r.logger.Error("release lock failed", "error", err)
	}
}
