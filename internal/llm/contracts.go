package llm

import "context"

// TextGenerator is the interface the pipeline depends on: one prompt in,
// the model's raw text out. Implementations own transport, timeouts and
// endpoint details; the pipeline owns prompt construction and parsing.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelErrorPrefix is the sentinel the model uses to report failure inside
// an otherwise successful HTTP response.
const ModelErrorPrefix = "Грешка:"
