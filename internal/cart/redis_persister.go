package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cart:"

// RedisPersister keeps each cart as a JSON value with a sliding TTL
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPersister creates a persister that expires idle carts after ttl
func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, id string) (*Cart, error) {
	if id == "" {
		return nil, ErrInvalidCartID
	}

	payload, err := p.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read cart %s: %w", id, err)
	}

	c := New()
	if err := json.Unmarshal(payload, c); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}
	return c, nil
}

func (p *RedisPersister) Save(ctx context.Context, id string, c *Cart) error {
	if id == "" {
		return ErrInvalidCartID
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", id, err)
	}

	if err := p.client.Set(ctx, redisKeyPrefix+id, payload, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart %s: %w", id, err)
	}
	return nil
}

func (p *RedisPersister) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidCartID
	}

	if err := p.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", id, err)
	}
	return nil
}
