package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/go-redis/redis/v8"
)

// Runs only when REDIS_TEST_ADDR points at a disposable redis instance.
func TestRedisPreferenceStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisPreferenceStore(client)
	ctx := context.Background()
	key := "test-saved-forms"
	_ = store.Delete(ctx, key)

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrPreferenceNotFound) {
		t.Fatalf("expected ErrPreferenceNotFound, got %v", err)
	}
	if err := store.Set(ctx, key, []byte(`["a"]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `["a"]` {
		t.Errorf("unexpected value %s", value)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}
