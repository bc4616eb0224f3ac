package ports

import "context"

// TextGenerator is the narrow contract over the generation engine. The engine
// holds a loaded pretrained model and is safe for concurrent calls; it is built
// once at startup and injected so tests can substitute a fake.
type TextGenerator interface {
	// GenerateText returns a continuation for the prompt. The generation budget
	// (max new tokens, temperature) is fixed at construction time.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
