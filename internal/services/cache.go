package services

import (
	"context"
	"time"
)

// Cache defines the interface for caching operations.
type Cache interface {
	Ping(ctx context.Context) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
	WaitForConnection(ctx context.Context) error
}
