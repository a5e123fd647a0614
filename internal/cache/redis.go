package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	tripTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, tripTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		tripTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, tripTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, tripTTL: tripTTL}
}

// GetTripPlan returns nil, nil on a miss.
func (c *RedisCache) GetTripPlan(ctx context.Context, id string) (*domain.TripPlan, error) {
	data, err := c.client.Get(ctx, tripPlanKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *RedisCache) SetTripPlan(ctx context.Context, plan domain.TripPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tripPlanKey(plan.ID), payload, c.tripTTL).Err()
}

func (c *RedisCache) InvalidateTripPlan(ctx context.Context, id string) error {
	return c.client.Del(ctx, tripPlanKey(id)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func tripPlanKey(id string) string {
	return fmt.Sprintf("cache:trip_plan:%s", id)
}
