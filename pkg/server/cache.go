package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	"github.com/matst80/center-finder/pkg/facet"
	"github.com/redis/go-redis/v9"
)

// SelectionStore keeps the explore selection of a session per collection.
type SelectionStore interface {
	Get(ctx context.Context, sessionId, collection string) (facet.Selection, error)
	Set(ctx context.Context, sessionId, collection string, sel facet.Selection) error
	Delete(ctx context.Context, sessionId, collection string) error
}

func selectionKey(sessionId, collection string) string {
	return "selection:" + collection + ":" + sessionId
}

type RedisSelectionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSelectionStore(client *redis.Client, ttl time.Duration) *RedisSelectionStore {
	return &RedisSelectionStore{client: client, ttl: ttl}
}

func (s *RedisSelectionStore) Get(ctx context.Context, sessionId, collection string) (facet.Selection, error) {
	data, err := s.client.Get(ctx, selectionKey(sessionId, collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return facet.NewSelection(), nil
	}
	if err != nil {
		return nil, err
	}
	sel := facet.NewSelection()
	if err = jsoncompat.Unmarshal(data, &sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *RedisSelectionStore) Set(ctx context.Context, sessionId, collection string, sel facet.Selection) error {
	data, err := jsoncompat.Marshal(sel)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, selectionKey(sessionId, collection), data, s.ttl).Err()
}

func (s *RedisSelectionStore) Delete(ctx context.Context, sessionId, collection string) error {
	return s.client.Del(ctx, selectionKey(sessionId, collection)).Err()
}

type localSelection struct {
	expires   time.Time
	selection facet.Selection
}

type MemorySelectionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]localSelection
}

func NewMemorySelectionStore(ttl time.Duration) *MemorySelectionStore {
	return &MemorySelectionStore{ttl: ttl, now: time.Now, entries: make(map[string]localSelection)}
}

func (s *MemorySelectionStore) Get(_ context.Context, sessionId, collection string) (facet.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := selectionKey(sessionId, collection)
	entry, ok := s.entries[key]
	if !ok {
		return facet.NewSelection(), nil
	}
	if s.ttl > 0 && !s.now().Before(entry.expires) {
		delete(s.entries, key)
		return facet.NewSelection(), nil
	}
	return entry.selection.Clone(), nil
}

func (s *MemorySelectionStore) Set(_ context.Context, sessionId, collection string, sel facet.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[selectionKey(sessionId, collection)] = localSelection{
		expires:   s.now().Add(s.ttl),
		selection: sel.Clone(),
	}
	return nil
}

func (s *MemorySelectionStore) Delete(_ context.Context, sessionId, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, selectionKey(sessionId, collection))
	return nil
}
