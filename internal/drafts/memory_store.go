package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is a process-local Store. Sessions are stored encoded so callers
// never share state with the store.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memoryItem
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]memoryItem),
	}
}

func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(sess.ID); ok {
		return fmt.Errorf("session %s already exists", sess.ID)
	}
	return s.put(sess)
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return decodeSession(item.data)
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess, err := decodeSession(item.data)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.Revision++
	sess.UpdatedAt = s.now()
	if err := s.put(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(id); !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// lookup drops the item when it has expired. Callers hold mu.
func (s *MemoryStore) lookup(id string) (memoryItem, bool) {
	item, ok := s.items[id]
	if !ok {
		return memoryItem{}, false
	}
	if s.ttl > 0 && !s.now().Before(item.expiresAt) {
		delete(s.items, id)
		return memoryItem{}, false
	}
	return item, true
}

func (s *MemoryStore) put(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	s.items[sess.ID] = memoryItem{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Purge drops every expired session and reports how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id := range s.items {
		if _, ok := s.lookup(id); !ok {
			n++
		}
	}
	return n
}
