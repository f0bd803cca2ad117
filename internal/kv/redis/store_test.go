package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/navstash/internal/kv"
)

func TestStoreKeyPrefix(t *testing.T) {
	s := NewStore(nil, DefaultPrefix)
	if got := s.key("app_data"); got != "navstash:app_data" {
		t.Errorf("key() = %q, want navstash:app_data", got)
	}
	if got := NewStore(nil, "").key("app_data"); got != "app_data" {
		t.Errorf("key() without prefix = %q", got)
	}
}

func TestStoreUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewStore(client, DefaultPrefix)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	_, err := s.Get(ctx, "app_data")
	if err == nil {
		t.Fatal("Get() against an unreachable server should fail")
	}
	if errors.Is(err, kv.ErrNotFound) {
		t.Error("connection errors must not be reported as ErrNotFound")
	}
	if err := s.Ping(ctx); err == nil {
		t.Error("Ping() against an unreachable server should fail")
	}
}
