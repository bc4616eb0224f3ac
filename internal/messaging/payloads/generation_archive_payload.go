package payloads

import "time"

// GenerationArchivePayload carries a full generation transcript through
// RabbitMQ to the archive worker. It is self-contained so the worker does not
// need to read the event back from the database.
type GenerationArchivePayload struct {
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	InputText  string    `json:"input_text"`
	OutputText string    `json:"output_text"`
	CreatedAt  time.Time `json:"created_at"`
}
