// Package llm implements the structured-extraction capability on top of
// langchaingo, with one implementation per supported provider.
package llm

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/bedrock"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/raphaelgruber/sopmigrate-go/internal/config"
)

// ErrMissingAPIKey indicates the capability was configured without a
// usable credential. Raised at construction time, before any network
// interaction.
var ErrMissingAPIKey = errors.New("missing API key for extraction capability")

// Model wraps a langchaingo LLM as the extraction capability.
type Model struct {
	llm          llms.Model
	defaultModel string
}

// New creates the extraction capability for the configured provider.
// cfg.Model is the default model selector; callers may override it per
// completion.
func New(ctx context.Context, cfg config.Config) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.Provider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY or pass --api-key", ErrMissingAPIKey)
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: set ANTHROPIC_API_KEY", ErrMissingAPIKey)
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderBedrock:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		model, err = bedrock.New(
			bedrock.WithClient(client),
			bedrock.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	return &Model{
		llm:          model,
		defaultModel: cfg.Model,
	}, nil
}

// Complete sends the instruction to the capability and returns its raw
// textual response. model selects the capability variant; it is passed
// through unvalidated, so an unrecognized selector fails provider-side.
// An empty model falls back to the configured default. Temperature is
// pinned to 0 and JSON mode requested so the response stays parseable.
func (m *Model) Complete(ctx context.Context, instruction, model string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, instruction),
	}

	opts := []llms.CallOption{
		llms.WithTemperature(0),
		llms.WithJSONMode(),
	}
	if model != "" {
		opts = append(opts, llms.WithModel(model))
	}

	response, err := m.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return response.Choices[0].Content, nil
}

// DefaultModel returns the configured default model selector.
func (m *Model) DefaultModel() string {
	return m.defaultModel
}
