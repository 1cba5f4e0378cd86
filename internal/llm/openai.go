package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Seebrasse345/mp-statement-writer/pkg/config"
)

// OpenAIService implements CompletionService using the official openai-go
// SDK (chat completions).
type OpenAIService struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIService builds a client from configuration. The API key is
// forwarded untouched.
func NewOpenAIService(cfg config.OpenAIConfig) (*OpenAIService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &OpenAIService{model: cfg.Model, opts: opts}, nil
}

// Complete issues one chat completion with the given tuning options.
func (s *OpenAIService) Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	client := openai.NewClient(s.opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(opts.MaxTokens)
	}
	if opts.PresencePenalty != 0 {
		params.PresencePenalty = openai.Float(opts.PresencePenalty)
	}
	if opts.FrequencyPenalty != 0 {
		params.FrequencyPenalty = openai.Float(opts.FrequencyPenalty)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
