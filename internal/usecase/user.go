package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/repository"
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) GetAll(ctx context.Context) ([]domain.User, error) {
	users, err := u.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return u.users.FindByID(ctx, id)
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

// Update applies a partial update. Changing email to one owned by a
// different user fails with domain.ErrDuplicateEmail; keeping one's own
// email is a no-op and succeeds. The pre-check here is advisory: the
// store's unique constraint is the real guard under concurrency.
func (u *UserUsecase) Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := u.users.FindByEmail(ctx, *input.Email)
		if err == nil && existing.ID != id {
			return nil, domain.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}

	return u.users.Update(ctx, user)
}

func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	return u.users.Delete(ctx, id)
}
