package memory

import (
	"context"
	"sync"
	"testing"

	"go-website-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.GetByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "1", Email: "jane@example.com", Name: "Jane"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "2", Email: "jane@example.com"}), domain.ErrUserExists)

	got, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	got.Name = "mutated"
	again, _ := repo.GetByEmail(ctx, "jane@example.com")
	assert.Equal(t, "Jane", again.Name)
}

func TestUserRepo_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.Create(ctx, &domain.User{Email: "race@example.com"}) == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}
