package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ehrlich-b/ask/internal/conversation"
	"github.com/ehrlich-b/ask/internal/logger"
)

// AnthropicOptions configures the Anthropic provider.
type AnthropicOptions struct {
	APIKey     string
	Model      string
	MaxTokens  int
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// AnthropicProvider implements Provider against the Anthropic Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	apiKey    string
	model     string
	maxTokens int
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(opts AnthropicOptions) *AnthropicProvider {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &AnthropicProvider{
		client:    anthropic.NewClient(reqOpts...),
		apiKey:    opts.APIKey,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
	}
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete sends the conversation to Anthropic and returns the text of the reply
func (p *AnthropicProvider) Complete(ctx context.Context, messages conversation.Conversation) (string, error) {
	if p.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		Messages:  toMessageParams(messages),
	}

	logger.Debug("anthropic request", "model", p.model, "num_messages", len(messages))
	start := time.Now()

	msg, err := p.client.Messages.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		logger.Error("anthropic call failed", "error", err, "duration", duration, "model", p.model)
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("anthropic API error (status %d): %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var text []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = append(text, block.Text)
		}
	}
	if len(text) == 0 {
		return "", ErrEmptyResponse
	}

	logger.Debug("anthropic response",
		"model", p.model,
		"duration", duration,
		"input_tokens", msg.Usage.InputTokens,
		"output_tokens", msg.Usage.OutputTokens,
		"stop_reason", msg.StopReason)

	return strings.Join(text, ""), nil
}

func toMessageParams(messages conversation.Conversation) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == conversation.RoleAssistant {
			params = append(params, anthropic.NewAssistantMessage(block))
		} else {
			params = append(params, anthropic.NewUserMessage(block))
		}
	}
	return params
}
