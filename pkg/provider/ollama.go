package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

/*
OllamaProvider runs the prompt against a local Ollama server.
*/
type OllamaProvider struct {
	client *api.Client
	host   string
	params Params
}

type OllamaProviderOption func(*OllamaProvider)

func NewOllamaProvider(options ...OllamaProviderOption) (*OllamaProvider, error) {
	prvdr := &OllamaProvider{params: defaultParams()}

	for _, option := range options {
		option(prvdr)
	}

	if prvdr.params.Model == "" {
		prvdr.params.Model = "llama3.2"
	}

	if prvdr.host == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama client: %w", err)
		}

		prvdr.client = client

		return prvdr, nil
	}

	base, err := url.Parse(prvdr.host)
	if err != nil {
		return nil, fmt.Errorf("ollama host: %w", err)
	}

	prvdr.client = api.NewClient(base, http.DefaultClient)

	return prvdr, nil
}

func (prvdr *OllamaProvider) Name() string {
	return "ollama"
}

func (prvdr *OllamaProvider) Complete(ctx context.Context, prompt types.Prompt) (string, error) {
	ctx, cancel := withTimeout(ctx, prvdr.params.Timeout)
	defer cancel()

	stream := false
	messages := make([]api.Message, 0, len(prompt))

	for _, msg := range prompt {
		messages = append(messages, api.Message{Role: msg.Role, Content: msg.Content})
	}

	var sb strings.Builder

	err := prvdr.client.Chat(ctx, &api.ChatRequest{
		Model:    prvdr.params.Model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": prvdr.params.Temperature,
			"num_predict": prvdr.params.MaxTokens,
		},
	}, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama completion: %w", err)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}

// WithOllamaHost points the client at host instead of OLLAMA_HOST.
func WithOllamaHost(host string) OllamaProviderOption {
	return func(prvdr *OllamaProvider) {
		prvdr.host = host
	}
}

func WithOllamaParams(params Params) OllamaProviderOption {
	return func(prvdr *OllamaProvider) {
		prvdr.params = params
	}
}
