// Package redis guarda los tokens revocados en Redis para compartirlos entre instancias.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const keyPrefix = "autopublish:revoked:"

// TokenDenyList lista de tokens revocados con expiración nativa de Redis.
type TokenDenyList struct {
	client *goredis.Client
}

// NewClient crea el cliente desde REDIS_URL y verifica la conexión.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewTokenDenyList construye el adaptador.
func NewTokenDenyList(client *goredis.Client) *TokenDenyList {
	return &TokenDenyList{client: client}
}

// Revoke guarda el jti con TTL igual a la vida restante del token.
func (l *TokenDenyList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := l.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti está en la lista.
func (l *TokenDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := l.client.Get(ctx, keyPrefix+tokenID).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consultar token revocado: %w", err)
	}
	return true, nil
}
