package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore implements Store using Redis as the backing store. The TTL on
// the Redis key is the session expiry, so expired sessions vanish without a
// sweep.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// sessionKey generates a Redis key for a session id.
func (s *RedisStore) sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create establishes a new authenticated session for the user.
func (s *RedisStore) Create(ctx context.Context, userID string) (*Session, error) {
	sess := &Session{
		ID:            uuid.New().String(),
		UserID:        userID,
		Authenticated: true,
		ExpiresAt:     time.Now().Add(s.ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		s.log.Error("failed to store session", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.log.Debug("session created", zap.String("session_id", sess.ID), zap.String("user_id", userID))
	return sess, nil
}

// Get retrieves a session by id. A missing or expired session returns
// (nil, nil).
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(id)).Bytes()
	if err == redis.Nil {
		s.log.Debug("session miss", zap.String("session_id", id))
		return nil, nil
	}
	if err != nil {
		s.log.Error("failed to get session", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.log.Error("failed to unmarshal session", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}

	return &sess, nil
}

// Destroy removes a session. Destroying an absent session is a no-op.
func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.sessionKey(id)).Err(); err != nil {
		s.log.Error("failed to destroy session", zap.String("session_id", id), zap.Error(err))
		return err
	}

	s.log.Debug("session destroyed", zap.String("session_id", id))
	return nil
}

// Touch resets the session's expiry to a full TTL.
func (s *RedisStore) Touch(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil || sess == nil {
		return err
	}

	sess.ExpiresAt = time.Now().Add(s.ttl)
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.sessionKey(id), data, s.ttl).Err(); err != nil {
		s.log.Error("failed to touch session", zap.String("session_id", id), zap.Error(err))
		return err
	}

	return nil
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
