package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestMemoryLoginRateLimiter(t *testing.T) {
	l := NewLoginRateLimiter(3)
	for i := 0; i < 3; i++ {
		if !l.Allow("Ana@Example.com") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow(" ana@example.com ") {
		t.Fatalf("expected fourth attempt to be throttled")
	}
	if !l.Allow("bo@example.com") {
		t.Fatalf("expected other key unaffected")
	}
	if l.Allow("   ") {
		t.Fatalf("expected empty key rejected")
	}
}

func TestRedisLoginRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisLoginRateLimiter
		if !l.Allow("user@example.com") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 2}
		l := &redisLoginRateLimiter{client: mock, window: 2 * time.Minute, max: 3, prefix: "login:rl:"}
		if !l.Allow(" User@Example.com ") {
			t.Fatalf("expected allow when count <= max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "login:rl:user@example.com" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != 120 {
			t.Fatalf("expected TTL seconds=120, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisLoginAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := &redisLoginRateLimiter{client: &mockRedisEvaler{result: 4}, window: time.Minute, max: 3, prefix: "login:rl:"}
		if l.Allow("user@example.com") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisLoginRateLimiter{client: &mockRedisEvaler{err: errors.New("redis down")}, window: time.Minute, max: 3, prefix: "login:rl:"}
		if !l.Allow("user@example.com") {
			t.Fatalf("expected fail-open on redis errors")
		}
	})
}
