package ports

import (
	"context"

	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/google/uuid"
)

// UserStorage defines persistence operations for accounts.
type UserStorage interface {
	// SaveUser creates a new user. Returns domain.ErrConflict when the email or
	// username is already taken; the unique indexes are the source of truth so
	// concurrent registrations resolve to exactly one winner.
	SaveUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail returns domain.ErrNotFound when no such account exists.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// GenerationEventStorage defines the append-only event log.
// There is deliberately no update or delete operation.
type GenerationEventStorage interface {
	// SaveEvent appends one event; the write is durable before it returns.
	SaveEvent(ctx context.Context, event *domain.GenerationEvent) error

	// ListEventsByUser returns a user's events, newest first, paginated.
	ListEventsByUser(ctx context.Context, userID uuid.UUID, page, perPage int) ([]domain.GenerationEvent, error)
}
