package ports

import (
	"context"

	"github.com/GoArmGo/TextForge/internal/messaging/payloads"
)

// ArchivePublisher publishes generation transcripts for asynchronous archival.
// Used by the server after a successful generation; publishing is best-effort
// and never affects the client response.
type ArchivePublisher interface {
	PublishGenerationArchive(ctx context.Context, payload payloads.GenerationArchivePayload) error
}

// ArchiveConsumer consumes archive messages. Used by the worker to drain the
// queue and upload transcripts to object storage.
type ArchiveConsumer interface {
	// StartConsumingGenerationArchives starts listening on the queue and calls
	// handler for every message received.
	StartConsumingGenerationArchives(ctx context.Context, handler func(context.Context, payloads.GenerationArchivePayload) error) error
}
