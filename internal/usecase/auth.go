package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/email"
	"github.com/storefront-labs/storefront/internal/repository"
	"github.com/storefront-labs/storefront/internal/token"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	users  repository.UserRepository
	codec  *token.Codec
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, codec *token.Codec, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		codec:  codec,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult pairs the persisted user with a freshly minted bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates the user with a bcrypt-hashed password and returns a
// signed token. A taken email fails with domain.ErrDuplicateEmail: the
// friendly pre-check catches the common case, the unique constraint in
// the store catches concurrent registrations.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	_, err := u.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	signed, err := u.codec.Encode(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	go u.sendWelcomeEmail(user)

	return &AuthResult{User: user, Token: signed}, nil
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password both fail with domain.ErrInvalidCredentials so the
// response never reveals whether an account exists.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := u.codec.Encode(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResult{User: user, Token: signed}, nil
}

// sendWelcomeEmail is best effort: failures are logged, never surfaced.
func (u *AuthUsecase) sendWelcomeEmail(user *domain.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	subject := "Welcome to Storefront"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready.</p>", user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}
}
