// Package memory holds process-local repositories used when no database is
// configured. Data does not survive a restart.
package memory

import (
	"context"
	"sync"

	"go-website-backend/internal/domain"
)

type userRepo struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewUserRepository() domain.UserRepository {
	return &userRepo{byEmail: make(map[string]domain.User)}
}

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrUserExists
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
