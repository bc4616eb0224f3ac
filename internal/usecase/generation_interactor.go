package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/TextForge/internal/core/ports"
	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/GoArmGo/TextForge/internal/messaging/payloads"
	"github.com/google/uuid"
)

// generationUseCase implements GenerationUseCase.
type generationUseCase struct {
	events         ports.GenerationEventStorage
	engine         ports.TextGenerator
	archive        ports.ArchivePublisher
	maxPromptChars int
	logger         *slog.Logger
}

// NewGenerationUseCase wires the workflow. archive may be nil, in which case
// transcripts are simply not queued for archival.
func NewGenerationUseCase(
	events ports.GenerationEventStorage,
	engine ports.TextGenerator,
	archive ports.ArchivePublisher,
	maxPromptChars int,
	logger *slog.Logger,
) GenerationUseCase {
	return &generationUseCase{
		events:         events,
		engine:         engine,
		archive:        archive,
		maxPromptChars: maxPromptChars,
		logger:         logger,
	}
}

// Generate runs the request-scoped generation workflow.
//
// The ordering matters: validation happens before the engine is touched, the
// event is durably written before the result is returned, and nothing is
// written when the engine fails. That gives the caller an at-most-one-write
// guarantee per call.
func (uc *generationUseCase) Generate(ctx context.Context, userID uuid.UUID, prompt string) (*domain.GenerationEvent, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: input_text is required", domain.ErrInvalidInput)
	}
	if uc.maxPromptChars > 0 && len(prompt) > uc.maxPromptChars {
		return nil, fmt.Errorf("%w: input_text exceeds %d characters", domain.ErrInvalidInput, uc.maxPromptChars)
	}

	output, err := uc.engine.GenerateText(ctx, prompt)
	if err != nil {
		// No retry, no partial record. The detail stays in the server log.
		uc.logger.Error("generation engine call failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("generating text: %w", err)
	}

	event := &domain.GenerationEvent{
		ID:         uuid.New(),
		UserID:     userID,
		InputText:  prompt,
		OutputText: output,
	}

	if err := uc.events.SaveEvent(ctx, event); err != nil {
		uc.logger.Error("failed to persist generation event", "user_id", userID, "error", err)
		return nil, fmt.Errorf("recording generation event: %w", err)
	}

	uc.logger.Info("generation event recorded",
		"event_id", event.ID,
		"user_id", userID,
		"prompt_chars", len(prompt),
		"output_chars", len(output),
	)

	uc.publishArchive(ctx, event)

	return event, nil
}

// publishArchive queues the transcript for the archive worker. Failures are
// logged and swallowed: the event is already durable and the client response
// must not depend on the queue.
func (uc *generationUseCase) publishArchive(ctx context.Context, event *domain.GenerationEvent) {
	if uc.archive == nil {
		return
	}
	payload := payloads.GenerationArchivePayload{
		EventID:    event.ID.String(),
		UserID:     event.UserID.String(),
		InputText:  event.InputText,
		OutputText: event.OutputText,
		CreatedAt:  event.CreatedAt,
	}
	if err := uc.archive.PublishGenerationArchive(ctx, payload); err != nil {
		uc.logger.Warn("failed to publish archive message", "event_id", event.ID, "error", err)
	}
}

// History returns the user's generation events, newest first.
func (uc *generationUseCase) History(ctx context.Context, userID uuid.UUID, page, perPage int) ([]domain.GenerationEvent, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	events, err := uc.events.ListEventsByUser(ctx, userID, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return events, nil
}
