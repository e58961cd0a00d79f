package user

import (
	"context"
	"strings"
	"sync"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/user"
	repo "github.com/amirasaad/fintech-ledger/pkg/repository/user"
	"github.com/google/uuid"
)

// MemoryStore is a process-local identity store.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]user.User
	byUsername map[string]uuid.UUID
}

var _ repo.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty identity store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[uuid.UUID]user.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Create(_ context.Context, u *user.User) error {
	key := usernameKey(u.Username)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[key]; taken {
		return domain.ErrAlreadyExists
	}
	s.byID[u.ID] = *u
	s.byUsername[key] = u.ID
	return nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[usernameKey(username)]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryStore) Close() error { return nil }

// usernameKey makes usernames case-insensitive.
func usernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
