package shared

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreSharesTokenWithTTL(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	store := NewSessionStore(client, "staging", time.Hour)
	other := NewSessionStore(client, "staging", time.Hour)

	if token, err := store.Token(ctx); err != nil || token != "" {
		t.Fatalf("expected no token, got %q (%v)", token, err)
	}
	if err := store.SetToken(ctx, "abc"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if token, _ := other.Token(ctx); token != "abc" {
		t.Fatalf("second terminal should see the token, got %q", token)
	}
	if ttl := srv.TTL("barbox:session:staging"); ttl != time.Hour {
		t.Fatalf("unexpected ttl %s", ttl)
	}

	srv.FastForward(2 * time.Hour)
	if token, _ := store.Token(ctx); token != "" {
		t.Fatalf("expected expired token, got %q", token)
	}

	_ = store.SetToken(ctx, "def")
	if err := other.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if token, _ := store.Token(ctx); token != "" {
		t.Fatalf("expected cleared token, got %q", token)
	}
}

func TestSessionStoreProfilesAreIsolated(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	_ = NewSessionStore(client, "", time.Minute).SetToken(ctx, "dev")
	if token, _ := NewSessionStore(client, "prod", time.Minute).Token(ctx); token != "" {
		t.Fatalf("profiles leaked: %q", token)
	}
	if !srv.Exists("barbox:session:default") {
		t.Fatalf("blank profile should use the default key")
	}
}
