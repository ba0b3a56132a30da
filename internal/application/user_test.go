package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/infrastructure/storage"
)

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateInspecting)
	require.NoError(t, err)
	require.Equal(t, entity.StateInspecting, user.State)
}

func TestUserService_SetBlurSize(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetBlurSize(ctx, 3, 30, 150)
	require.NoError(t, err)
	require.Equal(t, 151, user.Params.BlurSize) // чётное ядро становится нечётным
	require.Equal(t, entity.DefaultThreshold, user.Params.Threshold)

	// Выход за границы прижимается.
	user, err = svc.SetBlurSize(ctx, 3, 30, 5000)
	require.NoError(t, err)
	require.Equal(t, entity.MaxBlurSize, user.Params.BlurSize)
}

func TestUserService_SetThreshold(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetThreshold(ctx, 4, 40, 25)
	require.NoError(t, err)
	require.Equal(t, 25, user.Params.Threshold)

	user, err = svc.SetThreshold(ctx, 4, 40, -5)
	require.NoError(t, err)
	require.Equal(t, entity.MinThreshold, user.Params.Threshold)
}
