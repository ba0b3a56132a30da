package app

import (
	"context"

	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetBlurSize обновляет размер ядра размытия; значение прижимается к границам.
func (s *UserService) SetBlurSize(ctx context.Context, userID, chatID int64, size int) (*entity.User, error) {
	return s.setParams(ctx, userID, chatID, func(p entity.Params) entity.Params {
		p.BlurSize = size
		return p
	})
}

// SetThreshold обновляет порог детекции; значение прижимается к границам.
func (s *UserService) SetThreshold(ctx context.Context, userID, chatID int64, threshold int) (*entity.User, error) {
	return s.setParams(ctx, userID, chatID, func(p entity.Params) entity.Params {
		p.Threshold = threshold
		return p
	})
}

func (s *UserService) setParams(ctx context.Context, userID, chatID int64, change func(entity.Params) entity.Params) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetParams(change(user.Params))
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
