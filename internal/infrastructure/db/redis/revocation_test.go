package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRevokedKey(t *testing.T) {
	if got := revokedKey("abc"); got != "revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRevocationStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	store := NewRevocationStore(client)
	jti := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, revokedKey(jti)) })

	revoked, err := store.IsRevoked(ctx, jti)
	if err != nil || revoked {
		t.Fatalf("fresh token must not be revoked: %v, %v", revoked, err)
	}

	if err := store.Revoke(ctx, jti, time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err = store.IsRevoked(ctx, jti)
	if err != nil || !revoked {
		t.Fatalf("token must be revoked: %v, %v", revoked, err)
	}

	ttl, err := client.TTL(ctx, revokedKey(jti)).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("revocation must expire with the token, ttl=%v err=%v", ttl, err)
	}
}
