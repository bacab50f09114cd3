package embed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// OllamaEmbedder calls the embed endpoint of a local Ollama server.
type OllamaEmbedder struct {
	client *api.Client
	host   string
	model  string
	dim    int
}

type OllamaEmbedderOption func(*OllamaEmbedder)

func NewOllamaEmbedder(options ...OllamaEmbedderOption) (*OllamaEmbedder, error) {
	embedder := &OllamaEmbedder{
		model: "all-minilm",
		dim:   Dimension,
	}

	for _, option := range options {
		option(embedder)
	}

	if embedder.host == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama client: %w", err)
		}

		embedder.client = client

		return embedder, nil
	}

	base, err := url.Parse(embedder.host)
	if err != nil {
		return nil, fmt.Errorf("ollama host: %w", err)
	}

	embedder.client = api.NewClient(base, http.DefaultClient)

	return embedder, nil
}

func (embedder *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := embedder.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

func (embedder *OllamaEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := embedder.client.Embed(ctx, &api.EmbedRequest{
		Model: embedder.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	if err := checkDimension(embedder.dim, resp.Embeddings...); err != nil {
		return nil, err
	}

	return resp.Embeddings, nil
}

func (embedder *OllamaEmbedder) Dim() int {
	return embedder.dim
}

func WithOllamaEmbedderModel(model string) OllamaEmbedderOption {
	return func(embedder *OllamaEmbedder) {
		embedder.model = model
	}
}

// WithOllamaEmbedderHost points the client at host instead of OLLAMA_HOST.
func WithOllamaEmbedderHost(host string) OllamaEmbedderOption {
	return func(embedder *OllamaEmbedder) {
		embedder.host = host
	}
}

func WithOllamaEmbedderDimension(dim int) OllamaEmbedderOption {
	return func(embedder *OllamaEmbedder) {
		embedder.dim = dim
	}
}
