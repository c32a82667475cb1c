package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore caches per-user capability snapshots and revoked
// tokens. A cache miss falls back to the database, so Redis being down
// degrades to slower requests, never to wrong permissions.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func userKey(userID int64) string {
	return fmt.Sprintf("session:user:%d", userID)
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:revoked:" + hex.EncodeToString(sum[:])
}

func (s *RedisSessionStore) GetUser(ctx context.Context, userID int64) (*User, bool) {
	payload, err := s.client.Get(ctx, userKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("session cache read failed", "error", err, "user_id", userID)
		}
		return nil, false
	}

	var user User
	if err := json.Unmarshal(payload, &user); err != nil {
		s.logger.Warn("session cache entry corrupt, dropping", "error", err, "user_id", userID)
		_ = s.client.Del(ctx, userKey(userID)).Err()
		return nil, false
	}
	return &user, true
}

func (s *RedisSessionStore) PutUser(ctx context.Context, user *User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	return s.client.Set(ctx, userKey(user.ID), payload, s.ttl).Err()
}

func (s *RedisSessionStore) DropUser(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, userKey(userID)).Err()
}

// RevokeToken marks a token unusable until its natural expiry.
func (s *RedisSessionStore) RevokeToken(ctx context.Context, token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKey(token), "1", ttl).Err()
}

func (s *RedisSessionStore) IsTokenRevoked(ctx context.Context, token string) bool {
	exists, err := s.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		s.logger.Warn("revocation check failed, treating token as valid", "error", err)
		return false
	}
	return exists > 0
}
