package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

// releaseScript deletes the lock only while it still holds the caller's token,
// so a holder whose TTL lapsed cannot free a lock someone else now owns.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// PaymentLock is a short-lived per-order mutex shared by every API instance.
// Key format: payment-lock:<order_id>, value: the holder's token.
type PaymentLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPaymentLock creates a PaymentLock wrapping the given Redis client. The
// TTL bounds how long a crashed holder can block an order.
func NewPaymentLock(client *redis.Client, ttl time.Duration) *PaymentLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &PaymentLock{client: client, ttl: ttl}
}

// Acquire reports whether the lock for orderID was free and is now held. The
// token it returns is required to release it.
func (l *PaymentLock) Acquire(ctx context.Context, orderID string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(orderID), token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("payment lock acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *PaymentLock) Release(ctx context.Context, orderID, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key(orderID)}, token).Err(); err != nil {
		return fmt.Errorf("payment lock release: %w", err)
	}
	return nil
}

func (l *PaymentLock) key(orderID string) string {
	return fmt.Sprintf("payment-lock:%s", orderID)
}
