package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the bearer token in Redis so that several terminals
// of the same operator share one login.
type SessionStore struct {
	client  *redis.Client
	profile string
	ttl     time.Duration
	now     func() time.Time
}

type sessionPayload struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// NewSessionStore constructs a SessionStore. profile namespaces the key.
func NewSessionStore(client *redis.Client, profile string, ttl time.Duration) *SessionStore {
	if profile == "" {
		profile = "default"
	}
	return &SessionStore{client: client, profile: profile, ttl: ttl, now: time.Now}
}

// Token returns the stored token, or "" when none is stored.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	payload, err := s.client.Get(ctx, s.redisKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("session: get: %w", err)
	}
	var stored sessionPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		return "", fmt.Errorf("session: decode: %w", err)
	}
	return stored.Token, nil
}

// SetToken stores token with the configured expiry.
func (s *SessionStore) SetToken(ctx context.Context, token string) error {
	data, err := json.Marshal(sessionPayload{Token: token, IssuedAt: s.now().UTC()})
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.redisKey(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: set: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.redisKey()).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (s *SessionStore) redisKey() string {
	return "barbox:session:" + s.profile
}
