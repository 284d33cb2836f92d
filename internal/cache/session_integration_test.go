//go:build integration

package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/linkfolio/linkfolio/internal/testutil"
)

func newSessionTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	raw := redis.NewClient(opt)
	t.Cleanup(func() { _ = raw.Close() })

	if err := testutil.FlushRedis(ctx, raw); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	cache, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	return ctx, cache
}

func TestIntegrationSession_Lifecycle(t *testing.T) {
	ctx, cache := newSessionTestEnv(t)

	token := "tok_integration_test"

	exists, err := cache.SessionExists(ctx, token)
	if err != nil {
		t.Fatalf("SessionExists failed: %v", err)
	}
	if exists {
		t.Fatal("session should not exist before creation")
	}

	if err := cache.CreateSession(ctx, token); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	exists, err = cache.SessionExists(ctx, token)
	if err != nil {
		t.Fatalf("SessionExists failed: %v", err)
	}
	if !exists {
		t.Fatal("session should exist after creation")
	}

	if err := cache.DeleteSession(ctx, token); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	exists, err = cache.SessionExists(ctx, token)
	if err != nil {
		t.Fatalf("SessionExists failed: %v", err)
	}
	if exists {
		t.Fatal("session should not exist after deletion")
	}
}

func TestIntegrationSession_TTLSet(t *testing.T) {
	ctx, cache := newSessionTestEnv(t)

	token := "tok_ttl_test"
	if err := cache.CreateSession(ctx, token); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	ttl, err := cache.client.TTL(ctx, sessionPrefix+token).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > SessionTTL {
		t.Errorf("expected TTL in (0, %v], got %v", SessionTTL, ttl)
	}
}
