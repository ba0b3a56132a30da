package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lens-inspector/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesUser(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	// Повторный Get возвращает того же пользователя.
	same, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, user, same)
}

func TestMemoryUserRepository_UpdateState(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateState(ctx, 1, entity.StateAwaitingPhoto))
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	// Неизвестный пользователь не приводит к ошибке.
	require.NoError(t, repo.UpdateState(ctx, 99, entity.StateMainMenu))
}

func TestMemoryUserRepository_UpdateParams(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateParams(ctx, 1, entity.Params{BlurSize: 100, Threshold: 30}))
	require.Equal(t, 101, user.Params.BlurSize)
	require.Equal(t, 30, user.Params.Threshold)
}
