package appstate

import (
	"sync"

	"github.com/vladimiradmaev/glucotrack/internal/interfaces"
)

// Manager keeps one Store per signed-in user so requests within a session
// are served from the same synchronized cache.
type Manager struct {
	users   interfaces.UserServiceInterface
	glucose interfaces.GlucoseServiceInterface
	weight  interfaces.WeightServiceInterface

	stores map[string]*Store
	mu     sync.RWMutex
}

// NewManager creates a store manager.
func NewManager(
	users interfaces.UserServiceInterface,
	glucose interfaces.GlucoseServiceInterface,
	weight interfaces.WeightServiceInterface,
) *Manager {
	return &Manager{
		users:   users,
		glucose: glucose,
		weight:  weight,
		stores:  make(map[string]*Store),
	}
}

// GetOrCreate returns the store for userID, creating one in the loading
// state when none exists.
func (m *Manager) GetOrCreate(userID string) *Store {
	m.mu.RLock()
	store, exists := m.stores[userID]
	m.mu.RUnlock()
	if exists {
		return store
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if store, exists := m.stores[userID]; exists {
		return store
	}
	store = NewStore(m.users, m.glucose, m.weight)
	m.stores[userID] = store
	return store
}

// Remove drops the store for userID, typically on logout.
func (m *Manager) Remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}
