package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

/*
openaiRoleMap compresses convertMessages' switch.
*/
var openaiRoleMap = map[string]func(string) openai.ChatCompletionMessageParamUnion{
	types.RoleSystem: func(text string) openai.ChatCompletionMessageParamUnion {
		return openai.SystemMessage(text)
	},
	types.RoleUser: func(text string) openai.ChatCompletionMessageParamUnion {
		return openai.UserMessage(text)
	},
	types.RoleAssistant: func(text string) openai.ChatCompletionMessageParamUnion {
		return openai.AssistantMessage(text)
	},
}

/*
OpenAIProvider is a provider for the OpenAI chat completions API.
*/
type OpenAIProvider struct {
	client *openai.Client
	params Params
}

type OpenAIProviderOption func(*OpenAIProvider)

func NewOpenAIProvider(options ...OpenAIProviderOption) *OpenAIProvider {
	prvdr := &OpenAIProvider{params: defaultParams()}

	for _, option := range options {
		option(prvdr)
	}

	if prvdr.params.Model == "" {
		prvdr.params.Model = openai.ChatModelGPT4oMini
	}

	return prvdr
}

func (prvdr *OpenAIProvider) Name() string {
	return "openai"
}

func (prvdr *OpenAIProvider) Complete(ctx context.Context, prompt types.Prompt) (string, error) {
	ctx, cancel := withTimeout(ctx, prvdr.params.Timeout)
	defer cancel()

	resp, err := prvdr.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(prvdr.params.Model),
		Messages:    prvdr.convertMessages(prompt),
		MaxTokens:   openai.Int(int64(prvdr.params.MaxTokens)),
		Temperature: openai.Float(prvdr.params.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

func (prvdr *OpenAIProvider) convertMessages(prompt types.Prompt) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(prompt))

	for _, msg := range prompt {
		fn, ok := openaiRoleMap[msg.Role]
		if !ok {
			fn = openaiRoleMap[types.RoleUser]
		}

		out = append(out, fn(msg.Content))
	}

	return out
}

// WithOpenAIClient builds a client with SDK retries turned off.
func WithOpenAIClient(apiKey, baseURL string) OpenAIProviderOption {
	return func(prvdr *OpenAIProvider) {
		opts := []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		}

		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}

		client := openai.NewClient(opts...)
		prvdr.client = &client
	}
}

func WithOpenAIParams(params Params) OpenAIProviderOption {
	return func(prvdr *OpenAIProvider) {
		prvdr.params = params
	}
}
