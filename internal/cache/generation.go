// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// generation.go provides a Valkey-backed cache for remote generation
// results. Remote providers are slow and metered, so an identical prompt
// sent to the same provider within the TTL is served from cache instead of
// making another API call. Local results are never cached; the local path
// is already instant.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"websmith/internal/models"
)

const (
	// generationKeyPrefix namespaces generation cache keys in Valkey.
	generationKeyPrefix = "generation:"

	// DefaultGenerationTTL is how long a remote result stays cached.
	DefaultGenerationTTL = 15 * time.Minute
)

// GenerationCache stores parsed remote generation results in Valkey.
type GenerationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationCache creates a generation cache backed by the given client.
func NewGenerationCache(client *redis.Client, ttl time.Duration) *GenerationCache {
	if ttl == 0 {
		ttl = DefaultGenerationTTL
	}
	return &GenerationCache{client: client, ttl: ttl}
}

// Get retrieves a cached result for a provider+prompt pair.
func (c *GenerationCache) Get(ctx context.Context, provider, prompt string) (models.Generation, bool) {
	key := generationKey(provider, prompt)
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return models.Generation{}, false
	}
	if err != nil {
		slog.Warn("generation cache get error", "key", key, "error", err)
		return models.Generation{}, false
	}

	var gen models.Generation
	if err := json.Unmarshal(val, &gen); err != nil {
		slog.Warn("generation cache decode error", "key", key, "error", err)
		return models.Generation{}, false
	}
	slog.Debug("generation cache hit", "provider", provider)
	return gen, true
}

// Set stores a result for a provider+prompt pair with the configured TTL.
func (c *GenerationCache) Set(ctx context.Context, provider, prompt string, gen models.Generation) {
	payload, err := json.Marshal(gen)
	if err != nil {
		slog.Warn("generation cache encode error", "error", err)
		return
	}
	if err := c.client.Set(ctx, generationKey(provider, prompt), payload, c.ttl).Err(); err != nil {
		slog.Warn("generation cache set error", "error", err)
	}
}

// generationKey hashes the prompt so arbitrarily long input still yields a
// bounded Valkey key.
func generationKey(provider, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return generationKeyPrefix + provider + ":" + hex.EncodeToString(sum[:])
}
