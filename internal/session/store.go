package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foolivery/internal/redisclient"
)

// Data is what a session remembers about its authenticated user
type Data struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists session data by session id. Load returns nil, nil for
// unknown or expired sessions.
type Store interface {
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.entries[id] = memoryEntry{data: *data, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return nil, nil
	}
	data := e.data
	return &data, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// RedisStore keeps sessions in Redis under "session:<id>" with a TTL
type RedisStore struct {
	client *redisclient.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redisclient.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(id string) string { return "session:" + id }

func (s *RedisStore) Save(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	if err := s.client.SetJSON(ctx, redisKey(id), data, ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Data, error) {
	var data Data
	found, err := s.client.GetJSON(ctx, redisKey(id), &data)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &data, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, redisKey(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
