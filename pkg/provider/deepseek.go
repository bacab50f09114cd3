package provider

import (
	"context"
	"fmt"
	"strings"

	deepseek "github.com/cohesion-org/deepseek-go"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

/*
deepseekRoleMap compresses convertMessages' switch.
*/
var deepseekRoleMap = map[string]string{
	types.RoleSystem:    deepseek.ChatMessageRoleSystem,
	types.RoleUser:      deepseek.ChatMessageRoleUser,
	types.RoleAssistant: deepseek.ChatMessageRoleAssistant,
}

/*
DeepseekProvider talks to any OpenAI-compatible chat endpoint through the
deepseek client, authenticated with a bearer token. With the default base
URL that is OpenRouter.
*/
type DeepseekProvider struct {
	client *deepseek.Client
	params Params
}

type DeepseekProviderOption func(*DeepseekProvider)

func NewDeepseekProvider(options ...DeepseekProviderOption) *DeepseekProvider {
	prvdr := &DeepseekProvider{params: defaultParams()}

	for _, option := range options {
		option(prvdr)
	}

	if prvdr.client == nil {
		WithDeepseekClient("", OpenRouterURL)(prvdr)
	}

	if prvdr.params.Model == "" {
		prvdr.params.Model = OpenRouterModel
	}

	return prvdr
}

func (prvdr *DeepseekProvider) Name() string {
	return "deepseek"
}

func (prvdr *DeepseekProvider) Complete(ctx context.Context, prompt types.Prompt) (string, error) {
	ctx, cancel := withTimeout(ctx, prvdr.params.Timeout)
	defer cancel()

	resp, err := prvdr.client.CreateChatCompletion(ctx, &deepseek.ChatCompletionRequest{
		Model:       prvdr.params.Model,
		Messages:    prvdr.convertMessages(prompt),
		MaxTokens:   prvdr.params.MaxTokens,
		Temperature: float32(prvdr.params.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("deepseek completion: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}

func (prvdr *DeepseekProvider) convertMessages(prompt types.Prompt) []deepseek.ChatCompletionMessage {
	out := make([]deepseek.ChatCompletionMessage, 0, len(prompt))

	for _, msg := range prompt {
		role, ok := deepseekRoleMap[msg.Role]
		if !ok {
			role = deepseek.ChatMessageRoleUser
		}

		out = append(out, deepseek.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	return out
}

// WithDeepseekClient builds the client. An empty baseURL keeps the client's
// own default endpoint.
func WithDeepseekClient(apiKey, baseURL string) DeepseekProviderOption {
	return func(prvdr *DeepseekProvider) {
		if baseURL == "" {
			prvdr.client = deepseek.NewClient(apiKey)
			return
		}

		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		prvdr.client = deepseek.NewClient(apiKey, baseURL)
	}
}

func WithDeepseekParams(params Params) DeepseekProviderOption {
	return func(prvdr *DeepseekProvider) {
		prvdr.params = params
	}
}
