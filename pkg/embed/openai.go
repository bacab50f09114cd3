package embed

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

// OpenAIEmbedder asks the embeddings API for vectors shortened to dim.
type OpenAIEmbedder struct {
	api   openai.Client
	model string
	dim   int
}

type OpenAIEmbedderOption func(*OpenAIEmbedder)

func NewOpenAIEmbedder(options ...OpenAIEmbedderOption) *OpenAIEmbedder {
	embedder := &OpenAIEmbedder{
		model: "text-embedding-3-small",
		dim:   Dimension,
	}

	for _, option := range options {
		option(embedder)
	}

	return embedder
}

func (embedder *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := embedder.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

func (embedder *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := embedder.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(embedder.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Dimensions: openai.Int(int64(embedder.dim)),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = utils.ConvertToFloat32(d.Embedding)
	}

	if err := checkDimension(embedder.dim, out...); err != nil {
		return nil, err
	}

	return out, nil
}

func (embedder *OpenAIEmbedder) Dim() int {
	return embedder.dim
}

func WithOpenAIEmbedderModel(model string) OpenAIEmbedderOption {
	return func(embedder *OpenAIEmbedder) {
		embedder.model = model
	}
}

// WithOpenAIEmbedderClient builds the client. An empty baseURL keeps the
// SDK default.
func WithOpenAIEmbedderClient(apiKey, baseURL string) OpenAIEmbedderOption {
	return func(embedder *OpenAIEmbedder) {
		opts := []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		}

		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}

		embedder.api = openai.NewClient(opts...)
	}
}

func WithOpenAIEmbedderDimension(dim int) OpenAIEmbedderOption {
	return func(embedder *OpenAIEmbedder) {
		embedder.dim = dim
	}
}
