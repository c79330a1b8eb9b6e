package notes

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o"

// DefaultTemperature is the sampling temperature used when none is configured.
const DefaultTemperature float32 = 0.5

// Config configures the OpenAI-backed notes formatter.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	BaseURL     string // API endpoint override; empty means api.openai.com
	Taxonomy    Taxonomy
}

// OpenAIFormatter implements Formatter over the OpenAI chat completion API.
type OpenAIFormatter struct {
	client      *openai.Client
	model       string
	temperature float32
	taxonomy    Taxonomy
}

// NewOpenAIFormatter creates a formatter from the given configuration.
func NewOpenAIFormatter(cfg Config) (*OpenAIFormatter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/v1"
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	taxonomy := cfg.Taxonomy
	if len(taxonomy.TicketPrefixes) == 0 && taxonomy.TrackerURL == "" {
		taxonomy = DefaultTaxonomy()
	}

	return &OpenAIFormatter{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: temperature,
		taxonomy:    taxonomy,
	}, nil
}

// FormatReleaseNotes sends the raw notes through the chat completion API
// and returns the model's rendition.
func (f *OpenAIFormatter) FormatReleaseNotes(ctx context.Context, raw string) (string, error) {
	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: f.taxonomy.BuildPrompt(raw)},
		},
		Temperature: f.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to format release notes: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion response contained no choices")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("chat completion response contained no formatted notes")
	}

	return content, nil
}
