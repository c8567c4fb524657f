package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/yung988/eliceli-salon/internal/models"
)

const (
	servicesKey = "cache:services"
	servicesTTL = 5 * time.Minute
	slotsTTL    = 30 * time.Second
)

// Cache drží ceník služeb a spočítanou dostupnost v Redisu. Bez
// REDIS_URL běží vypnutá a všechna volání jsou no-op; engine funguje
// stejně, jen bez cache.
type Cache struct {
	client *redis.Client
	log    zerolog.Logger
}

func New(redisURL string, log zerolog.Logger) *Cache {
	if redisURL == "" {
		return &Cache{log: log}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, cache disabled")
		return &Cache{log: log}
	}

	return &Cache{client: redis.NewClient(opts), log: log}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) GetServices(ctx context.Context) ([]models.Service, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.client.Get(ctx, servicesKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}

	var services []models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, false
	}
	return services, true
}

func (c *Cache) SetServices(ctx context.Context, services []models.Service) {
	if !c.Enabled() {
		return
	}

	payload, err := json.Marshal(services)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, servicesKey, payload, servicesTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache write failed")
	}
}

func (c *Cache) GetSlots(ctx context.Context, date string, serviceID uint) ([]string, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.client.Get(ctx, slotsKey(date, serviceID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Cache) SetSlots(ctx context.Context, date string, serviceID uint, slots []string) {
	if !c.Enabled() {
		return
	}

	payload, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotsKey(date, serviceID), payload, slotsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache write failed")
	}
}

// InvalidateDate zahodí dostupnost pro den po každé mutaci rezervací.
func (c *Cache) InvalidateDate(ctx context.Context, date string) {
	if !c.Enabled() {
		return
	}

	keys, err := c.client.Keys(ctx, fmt.Sprintf("cache:slots:%s:*", date)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}

func slotsKey(date string, serviceID uint) string {
	return fmt.Sprintf("cache:slots:%s:%d", date, serviceID)
}
