package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// UserStorage implements ports.UserStorage with GORM over PostgreSQL.
type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{db: db}
}

// SaveUser creates a new user. Duplicate email or username surfaces as
// domain.ErrConflict; the unique indexes serialize concurrent registrations so
// at most one wins.
func (s *UserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		var pqErr *pq.Error
		if errors.As(result.Error, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("saving user: %w", domain.ErrConflict)
		}
		return fmt.Errorf("saving user: %w", result.Error)
	}
	return nil
}

// GetUserByEmail looks a user up by email.
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting user by email: %w", result.Error)
	}
	return &user, nil
}

// GetUserByID looks a user up by its internal ID.
func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting user by id: %w", result.Error)
	}
	return &user, nil
}
