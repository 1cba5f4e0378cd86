// Package llm wraps the completion provider behind a small interface so the
// workflow can be driven with stub implementations in tests.
package llm

import "context"

// Options tunes a single completion call. Zero-valued penalties are not
// sent to the provider.
type Options struct {
	Temperature      float64
	MaxTokens        int64
	PresencePenalty  float64
	FrequencyPenalty float64
}

// CompletionService produces a completion for a system/user prompt pair.
type CompletionService interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
}
