package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Guard suppresses duplicate webhook deliveries of the same update.
// Telegram retries deliveries until acknowledged, so the same update_id
// can arrive more than once. The guard is best-effort: when Redis is
// unavailable every delivery is treated as first.
type Guard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGuard(rdb *redis.Client) *Guard {
	return &Guard{rdb: rdb, ttl: defaultTTL}
}

// FirstDelivery reports whether this update_id has not been seen before.
// It fails open: a Redis error never blocks processing.
func (g *Guard) FirstDelivery(ctx context.Context, updateID int64) bool {
	if g == nil || g.rdb == nil {
		return true
	}
	key := fmt.Sprintf("tg:update:%d", updateID)
	ok, err := g.rdb.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}
