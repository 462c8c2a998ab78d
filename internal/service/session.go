package service

import (
	"sync"

	"candy-shop/internal/domain"
)

// SessionRegistry keeps the hydrated domain aggregate for each logged-in
// account so cart state survives between requests. One aggregate per account;
// the mutexes inside the aggregate serialize that user's cart mutations.
type SessionRegistry struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		users: make(map[string]*domain.User),
	}
}

func (s *SessionRegistry) get(id string) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *SessionRegistry) put(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}
