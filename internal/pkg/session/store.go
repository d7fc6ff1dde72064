package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound 会话不存在、已过期或已被吊销
var ErrSessionNotFound = errors.New("session not found")

// Store 会话存储，value 为会话所属邮箱
type Store interface {
	Save(ctx context.Context, id, email string, ttl time.Duration) error
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore redis 会话存储
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "session:"}
}

func (s *RedisStore) Save(ctx context.Context, id, email string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.prefix+id, email, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (string, error) {
	email, err := s.rdb.Get(ctx, s.prefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	return email, err
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.prefix+id).Err()
}

// MemoryStore 进程内会话存储
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	email    string
	expireAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem)}
}

func (s *MemoryStore) Save(_ context.Context, id, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = memoryItem{email: email, expireAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok || time.Now().After(item.expireAt) {
		return "", ErrSessionNotFound
	}
	return item.email, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}
