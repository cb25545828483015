package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

// UseCase exposes the locally-mirrored provider identity. Identity fields
// are written only during login, so this surface is read-only.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}
