package usecase

import (
	"context"

	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/google/uuid"
)

// AccountUseCase defines the credential operations behind registration and
// login. Session lifetime itself is handled at the HTTP layer; this layer only
// proves or denies identity.
type AccountUseCase interface {
	// Register creates a new account with a one-way hash of the password.
	// Returns domain.ErrConflict when the email or username is taken and
	// domain.ErrInvalidInput when a field is missing.
	Register(ctx context.Context, username, email, password string) (uuid.UUID, error)

	// Authenticate checks credentials against the stored hash. Any failure,
	// unknown email included, comes back as domain.ErrUnauthorized so callers
	// cannot probe which addresses are registered.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// GenerationUseCase orchestrates the generation workflow:
// validate -> engine call -> durable record -> response.
type GenerationUseCase interface {
	// Generate produces a continuation for the prompt on behalf of the user and
	// records it. Exactly one durable write happens on success; none on any
	// failure path. The caller must pass the identity resolved by the session
	// gate; uuid.Nil is rejected outright.
	Generate(ctx context.Context, userID uuid.UUID, prompt string) (*domain.GenerationEvent, error)

	// History returns the user's past generation events, newest first.
	History(ctx context.Context, userID uuid.UUID, page, perPage int) ([]domain.GenerationEvent, error)
}
