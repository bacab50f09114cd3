package provider

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

/*
anthropicRoleMap compresses convertMessages' switch. System messages are
carried separately on the request.
*/
var anthropicRoleMap = map[string]func(string) anthropic.MessageParam{
	types.RoleUser: func(text string) anthropic.MessageParam {
		return anthropic.NewUserMessage(anthropic.NewTextBlock(text))
	},
	types.RoleAssistant: func(text string) anthropic.MessageParam {
		return anthropic.NewAssistantMessage(anthropic.NewTextBlock(text))
	},
}

/*
AnthropicProvider is a provider for the Anthropic messages API.
*/
type AnthropicProvider struct {
	client *anthropic.Client
	params Params
}

type AnthropicProviderOption func(*AnthropicProvider)

func NewAnthropicProvider(options ...AnthropicProviderOption) *AnthropicProvider {
	prvdr := &AnthropicProvider{params: defaultParams()}

	for _, option := range options {
		option(prvdr)
	}

	if prvdr.params.Model == "" {
		prvdr.params.Model = "claude-3-5-haiku-latest"
	}

	return prvdr
}

func (prvdr *AnthropicProvider) Name() string {
	return "anthropic"
}

func (prvdr *AnthropicProvider) Complete(ctx context.Context, prompt types.Prompt) (string, error) {
	ctx, cancel := withTimeout(ctx, prvdr.params.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(prvdr.params.Model),
		MaxTokens:   int64(prvdr.params.MaxTokens),
		Messages:    prvdr.convertMessages(prompt),
		Temperature: anthropic.Float(prvdr.params.Temperature),
	}

	if system := prompt.System(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := prvdr.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var sb strings.Builder

	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}

func (prvdr *AnthropicProvider) convertMessages(prompt types.Prompt) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(prompt))

	for _, msg := range prompt {
		if fn, ok := anthropicRoleMap[msg.Role]; ok {
			out = append(out, fn(msg.Content))
		}
	}

	return out
}

func WithAnthropicClient(apiKey, baseURL string) AnthropicProviderOption {
	return func(prvdr *AnthropicProvider) {
		opts := []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		}

		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}

		client := anthropic.NewClient(opts...)
		prvdr.client = &client
	}
}

func WithAnthropicParams(params Params) AnthropicProviderOption {
	return func(prvdr *AnthropicProvider) {
		prvdr.params = params
	}
}
