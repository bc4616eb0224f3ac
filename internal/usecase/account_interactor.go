package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/TextForge/internal/core/ports"
	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	users  ports.UserStorage
	logger *slog.Logger
}

func NewAccountUseCase(users ports.UserStorage, logger *slog.Logger) AccountUseCase {
	return &accountUseCase{users: users, logger: logger}
}

// Register creates a new account. The plaintext password never leaves this
// function; only the bcrypt hash is stored.
func (uc *accountUseCase) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return uuid.Nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := uc.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Info("registration rejected, account exists", "email", email)
			return uuid.Nil, err
		}
		return uuid.Nil, fmt.Errorf("registering user: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", username)
	return user.ID, nil
}

// Authenticate resolves credentials to a user. Unknown email and wrong
// password both return domain.ErrUnauthorized; the hash comparison still runs
// against a cost-equivalent dummy on unknown email to keep timing flat.
func (uc *accountUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// dummyHash is a bcrypt hash of an unguessable value, compared against when the
// email is unknown so both failure paths cost the same.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()
