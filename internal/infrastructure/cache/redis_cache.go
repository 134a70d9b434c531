// Package cache guarda el resumen del tablero en Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
)

// keyPattern cubre todas las claves dashboard:summary:<periodo>:<desde>:<umbral>.
const keyPattern = "dashboard:summary:*"

// RedisSummaryCache implementa ports.SummaryCache con valores JSON y TTL.
// Las consultas de stock nunca pasan por aquí; solo el tablero.
type RedisSummaryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ ports.SummaryCache = (*RedisSummaryCache)(nil)

// NewRedisSummaryCache construye la caché. ttl <= 0 usa 60 segundos.
func NewRedisSummaryCache(client redis.Cmdable, ttl time.Duration) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisSummaryCache{client: client, ttl: ttl}
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (c *RedisSummaryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Invalidate borra todas las claves del tablero recorriendo con SCAN (nunca KEYS).
func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
