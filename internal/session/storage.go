package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keys.
const (
	KeyAuthToken      = "authToken"
	KeyWorkerData     = "workerData"
	KeyScreenshotMode = "screenshotMode"
)

// ErrNotFound is returned by Get when the key is not set.
var ErrNotFound = errors.New("session: key not found")

// Storage is per-client key/value storage.
type Storage interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID string, keys ...string) error
	Clear(ctx context.Context, clientID string) error
	Ping(ctx context.Context) error
}

// ==========================
// Redis
// ==========================

// RedisStorage keeps one hash per client under storage:<clientID>.
type RedisStorage struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStorage(client redis.Cmdable, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func redisKey(clientID string) string {
	return "storage:" + clientID
}

func (s *RedisStorage) Get(ctx context.Context, clientID, key string) (string, error) {
	val, err := s.client.HGet(ctx, redisKey(clientID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}

func (s *RedisStorage) Set(ctx context.Context, clientID, key, value string) error {
	k := redisKey(clientID)
	if err := s.client.HSet(ctx, k, key, value).Err(); err != nil {
		return err
	}
	if s.ttl > 0 {
		return s.client.Expire(ctx, k, s.ttl).Err()
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.HDel(ctx, redisKey(clientID), keys...).Err()
}

func (s *RedisStorage) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, redisKey(clientID)).Err()
}

func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ==========================
// Memory
// ==========================

// MemoryStorage is a process-local Storage for tests and single-node runs.
type MemoryStorage struct {
	mu      sync.RWMutex
	clients map[string]map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{clients: make(map[string]map[string]string)}
}

func (s *MemoryStorage) Get(_ context.Context, clientID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.clients[clientID][key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStorage) Set(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.clients[clientID]
	if !ok {
		values = make(map[string]string)
		s.clients[clientID] = values
	}
	values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, clientID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.clients[clientID], k)
	}
	return nil
}

func (s *MemoryStorage) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, clientID)
	return nil
}

func (s *MemoryStorage) Ping(context.Context) error {
	return nil
}
