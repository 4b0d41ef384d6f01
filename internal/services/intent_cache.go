package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
)

// IntentCache adapts a Cache to action.Cache, JSON-encoding the parsed
// Intent so the 30-second parser-result cache (§5) can be Redis-backed
// without the action package depending on services or context.
type IntentCache struct {
	cache  Cache
	logger *slog.Logger
}

var _ action.Cache = (*IntentCache)(nil)

func NewIntentCache(cache Cache, logger *slog.Logger) *IntentCache {
	return &IntentCache{cache: cache, logger: logger}
}

func (c *IntentCache) Get(key string) (action.Intent, bool) {
	val, err := c.cache.Get(context.Background(), "intent:"+key)
	if err != nil || val == "" {
		return action.Intent{}, false
	}
	var intent action.Intent
	if err := json.Unmarshal([]byte(val), &intent); err != nil {
		c.logger.Warn("corrupt cached intent, discarding", "key", key, "error", err)
		return action.Intent{}, false
	}
	return intent, true
}

func (c *IntentCache) Set(key string, intent action.Intent, ttl time.Duration) {
	data, err := json.Marshal(intent)
	if err != nil {
		c.logger.Warn("failed to marshal intent for cache", "key", key, "error", err)
		return
	}
	if err := c.cache.Set(context.Background(), "intent:"+key, data, ttl); err != nil {
		c.logger.Warn("failed to cache intent", "key", key, "error", err)
	}
}
