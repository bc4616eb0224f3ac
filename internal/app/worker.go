package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/GoArmGo/TextForge/internal/messaging/payloads"
)

// runWorker consumes archive messages and uploads one JSON transcript per
// generation event to object storage. It blocks until the context is
// cancelled.
func (a *App) runWorker(ctx context.Context) error {
	a.logger.Info("archive worker started, waiting for messages")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.GenerationArchivePayload) error {
		body, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling transcript %s: %w", payload.EventID, err)
		}

		key := fmt.Sprintf("generations/%s/%s.json", payload.UserID, payload.EventID)
		url, err := a.archiveStorage.UploadFile(ctx, key, bytes.NewReader(body), "application/json")
		if err != nil {
			return fmt.Errorf("archiving transcript %s: %w", payload.EventID, err)
		}

		a.logger.Info("transcript archived", "event_id", payload.EventID, "url", url)
		return nil
	}

	if err := a.archiveConsumer.StartConsumingGenerationArchives(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("starting archive consumer: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("termination signal received, stopping worker")
	cancelWorker()

	return nil
}
