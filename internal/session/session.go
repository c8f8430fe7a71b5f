package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/legwalet/le-barber/internal/config"
)

// TTL matches the API token lifetime.
const TTL = 24 * time.Hour

// Store persists the session reference: the currently signed-in user's id,
// keyed by session token. This is the only cross-restart state kept outside
// the entity store; the full user record is always re-resolved from there.
type Store interface {
	Save(ctx context.Context, token, userID string) error
	Load(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// --------------------------------------------------
// Redis-backed store
// --------------------------------------------------

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *config.Config) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
	}
}

func (s *RedisStore) Save(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, key(token), userID, TTL).Err()
}

func (s *RedisStore) Load(ctx context.Context, token string) (string, error) {
	val, err := s.client.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return "lebarber:session:" + token
}

// --------------------------------------------------
// In-process store
// --------------------------------------------------

// MemoryStore keeps sessions in the process. Used by tests and by installs
// that run without redis; it does not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]string)}
}

func (s *MemoryStore) Save(ctx context.Context, token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[token], nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
