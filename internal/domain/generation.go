package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerationEvent is one prompt/continuation pair produced for a user.
// Maps to the 'generation_events' table. Rows are append-only: created once per
// successful engine call, never updated or deleted.
type GenerationEvent struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	InputText  string    `json:"input_text" db:"input_text"`
	OutputText string    `json:"output_text" db:"output_text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (GenerationEvent) TableName() string {
	return "generation_events"
}
