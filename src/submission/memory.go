package submission

import (
	"context"
	"sync"
	"time"
)

var _ ConversationStore = (*MemoryStore)(nil)

// MemoryStore is a process-local ConversationStore. Entries older than ttl
// read as idle.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	convs map[int64]Conversation
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, convs: make(map[int64]Conversation)}
}

func (m *MemoryStore) Load(_ context.Context, userID int64) (Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[userID]
	if !ok {
		return Conversation{UserID: userID, State: StateIdle}, nil
	}
	if m.ttl > 0 && m.now().Sub(c.UpdatedAt) > m.ttl {
		delete(m.convs, userID)
		return Conversation{UserID: userID, State: StateIdle}, nil
	}
	return c, nil
}

func (m *MemoryStore) Save(_ context.Context, c Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.UpdatedAt = m.now()
	m.convs[c.UserID] = c
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.convs, userID)
	return nil
}
