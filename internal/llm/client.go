package llm

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rgriss/aimanifesto/config"
	"github.com/rgriss/aimanifesto/internal/utils"
)

// ErrMissingAPIKey is returned before any network call when no Anthropic
// credential is configured. Callers fail closed on it.
var ErrMissingAPIKey = errors.New("anthropic api key is not configured")

// Completer is the single outbound contract of the research pipeline: one
// prompt in, raw model text out. The real implementation wraps the
// Anthropic messages API; tests substitute a mock.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// AnthropicClient implements Completer against the Anthropic messages API
type AnthropicClient struct {
	client anthropic.Client
	apiKey string
	model  string
}

// NewAnthropicClient builds a client from the service config. The HTTP
// round trips go through the shared logging client; per-call deadlines
// come from the caller's context.
func NewAnthropicClient(cfg *config.Config) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithHTTPClient(utils.NewHTTPClient(2 * time.Minute)),
	}
	if cfg.AnthropicAPIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.AnthropicAPIKey))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		apiKey: cfg.AnthropicAPIKey,
		model:  cfg.AnthropicModel,
	}
}

// Complete sends a single user message and concatenates the text blocks of
// the response.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var content string
	for _, block := range message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return content, nil
}
