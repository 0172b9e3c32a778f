//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "hueshift-test:" + time.Now().Format(time.RFC3339Nano)

	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}

func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("HUESHIFT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HUESHIFT_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: addr, Prefix: "test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCacheIntegration(t *testing.T) {
	uri := os.Getenv("HUESHIFT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("HUESHIFT_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), MongoOptions{URI: uri, Collection: "cache_test"})
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}
