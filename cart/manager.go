package cart

import "sync"

// Manager owns one Store per signed-in user. Stores are created lazily and
// dropped explicitly; nothing here touches durable storage.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager() *Manager {
	return &Manager{stores: make(map[string]*Store)}
}

// StoreFor returns the user's cart, creating it on first use.
func (m *Manager) StoreFor(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[userID]
	if !ok {
		s = NewStore()
		m.stores[userID] = s
	}
	return s
}

// Drop discards the user's cart entirely.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}
