package action

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"
)

// cacheTTL is the external parser result cache lifetime.
const cacheTTL = 30 * time.Second

// Parser is the external LLM-backed intent parser, a black-box
// request/response collaborator per this core's scope: this package only
// depends on the interface, never a concrete implementation.
type Parser interface {
	Parse(ctx context.Context, userText, gameContext string) (Intent, error)
}

// Cache is the TTL'd cache the orchestrator keys parser results on. The
// session cache (Redis-backed in production) implements this.
type Cache interface {
	Get(key string) (Intent, bool)
	Set(key string, intent Intent, ttl time.Duration)
}

// Normalizer turns raw player text into a normalized Intent, preferring a
// cached or freshly-parsed external result and falling back to the regex
// parser whenever the external call fails, returns a sub-0.5 confidence,
// or yields no primary action.
type Normalizer struct {
	Parser Parser
	Cache  Cache
}

// Normalize is the single entry point the turn orchestrator calls.
func Normalize(ctx context.Context, n Normalizer, userText, gameContext string) Intent {
	key := cacheKey(userText, gameContext)

	if n.Cache != nil {
		if cached, ok := n.Cache.Get(key); ok {
			return cached
		}
	}

	if n.Parser == nil {
		return RegexFallback(userText)
	}

	intent, err := n.Parser.Parse(ctx, userText, gameContext)
	if err != nil || intent.Primary.Action == "" || intent.Confidence < 0.5 {
		return RegexFallback(userText)
	}

	if n.Cache != nil {
		n.Cache.Set(key, intent, cacheTTL)
	}
	return intent
}

// cacheKey derives the parser-result cache key: SHA-256(userText|context).
func cacheKey(userText, gameContext string) string {
	sum := sha256.Sum256([]byte(userText + "|" + gameContext))
	return fmt.Sprintf("%x", sum)
}
