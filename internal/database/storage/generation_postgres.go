package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerationEventStorage implements ports.GenerationEventStorage with GORM.
// The table is append-only; no update or delete methods exist.
type GenerationEventStorage struct {
	db *gorm.DB
}

func NewGenerationEventStorage(db *gorm.DB) *GenerationEventStorage {
	return &GenerationEventStorage{db: db}
}

// SaveEvent appends one generation event. The insert is committed before this
// returns, so callers can respond to the client knowing the record is durable.
func (s *GenerationEventStorage) SaveEvent(ctx context.Context, event *domain.GenerationEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	result := s.db.WithContext(ctx).Create(event)
	if result.Error != nil {
		return fmt.Errorf("saving generation event: %w", result.Error)
	}
	return nil
}

// ListEventsByUser returns a user's generation history, newest first.
func (s *GenerationEventStorage) ListEventsByUser(ctx context.Context, userID uuid.UUID, page, perPage int) ([]domain.GenerationEvent, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}
	offset := (page - 1) * perPage

	var events []domain.GenerationEvent
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&events)

	if result.Error != nil {
		return nil, fmt.Errorf("listing generation events: %w", result.Error)
	}
	return events, nil
}
