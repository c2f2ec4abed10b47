package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// Redis mirrors deliveries into a Redis list so an external relay can drain
// them. Uses the same list idiom as the job queue: LPUSH here, BRPOP on the
// consumer side.
type Redis struct {
	client *redis.Client
	key    string
}

var _ domain.Transport = (*Redis)(nil)

// NewRedis builds a bridge publishing to the given list key.
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

// Deliver pushes a JSON envelope onto the list.
func (t *Redis) Deliver(ctx context.Context, sub domain.Subscription, payload domain.NotificationPayload) error {
	raw, err := json.Marshal(newEnvelope(sub, payload))
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := t.client.LPush(ctx, t.key, raw).Err(); err != nil {
		return fmt.Errorf("push envelope: %w", err)
	}
	return nil
}
