package services

import (
	"context"
	"sync"
	"time"

	"github.com/AnshRaj112/userorders-backend/internal/models"
)

// MemoryUserStore keeps users in process memory. It backs STORE_BACKEND=memory
// for local runs and the HTTP tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
	order []string // userIds in insertion order
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return ErrDuplicateUserID
	}
	s.users[user.UserID] = user.Clone()
	s.order = append(s.order, user.UserID)
	return nil
}

func (s *MemoryUserStore) List(ctx context.Context) ([]models.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UserSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id].Summary())
	}
	return out, nil
}

func (s *MemoryUserStore) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return redacted(u), nil
}

func (s *MemoryUserStore) Update(ctx context.Context, userID string, patch models.UserPatch, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if !patch.IsEmpty() {
		u = u.Clone()
		patch.ApplyTo(&u)
		u.UpdatedAt = now
		s.users[userID] = u
	}
	return redacted(u), nil
}

func (s *MemoryUserStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, userID)
	for i, id := range s.order {
		if id == userID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryUserStore) AppendOrder(ctx context.Context, userID string, order models.Order, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u = u.Clone()
	u.Orders = append(u.Orders, order)
	u.UpdatedAt = now
	s.users[userID] = u
	return nil
}

func (s *MemoryUserStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// StoredPassword exposes the persisted hash; reads never return it.
func (s *MemoryUserStore) StoredPassword(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	return u.Password, ok
}

func redacted(u models.User) *models.User {
	out := u.Clone()
	out.Password = ""
	out.Normalize()
	return &out
}
