// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"websmith/internal/models"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, generationKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("ping after connect: %v", err)
	}
}

func TestGenerationCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	c := NewGenerationCache(client, time.Minute)
	ctx := context.Background()

	gen := models.Generation{
		HTML:        "<p>cached</p>",
		CSS:         "p{}",
		JS:          "f()",
		Description: "cached site",
	}
	c.Set(ctx, "gemini", "a shop", gen)

	got, ok := c.Get(ctx, "gemini", "a shop")
	if !ok {
		t.Fatal("Get: expected a hit for the stored entry")
	}
	if got != gen {
		t.Errorf("Get: got %+v, want %+v", got, gen)
	}
}

func TestGenerationCacheMissScopes(t *testing.T) {
	client := testValkeyClient(t)
	c := NewGenerationCache(client, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "gemini", "a shop", models.Generation{HTML: "<p>x</p>"})

	// Same prompt, different provider: separate entry.
	if _, ok := c.Get(ctx, "huggingface", "a shop"); ok {
		t.Error("cache entries must be scoped per provider")
	}
	// Different prompt, same provider.
	if _, ok := c.Get(ctx, "gemini", "a blog"); ok {
		t.Error("cache entries must be scoped per prompt")
	}
}

func TestGenerationCacheExpiry(t *testing.T) {
	client := testValkeyClient(t)
	c := NewGenerationCache(client, 50*time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "gemini", "short lived", models.Generation{HTML: "<p>x</p>"})
	time.Sleep(120 * time.Millisecond)

	if _, ok := c.Get(ctx, "gemini", "short lived"); ok {
		t.Error("entry should expire with the TTL")
	}
}
