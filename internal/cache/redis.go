package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/skybooking/config"
	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	seatMapTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, seatMapTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		seatMapTTL: seatMapTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) GetSeatMap(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	data, err := c.client.Get(ctx, seatMapKey(flightID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var seats []domain.Seat
	if err := json.Unmarshal(data, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

func (c *RedisCache) SetSeatMap(ctx context.Context, flightID int64, seats []domain.Seat) error {
	payload, err := json.Marshal(seats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, seatMapKey(flightID), payload, c.seatMapTTL).Err()
}

// InvalidateSeatMap drops the cached seat map after a claim or release
// so the read side does not serve a stale availability flag for long.
func (c *RedisCache) InvalidateSeatMap(ctx context.Context, flightID int64) error {
	return c.client.Del(ctx, seatMapKey(flightID)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func seatMapKey(flightID int64) string {
	return fmt.Sprintf("cache:flight:%d:seats", flightID)
}
