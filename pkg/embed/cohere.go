package embed

import (
	"context"
	"fmt"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	cohereoption "github.com/cohere-ai/cohere-go/v2/option"
	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

// CohereEmbedder uses the light English model, which produces 384 dims.
type CohereEmbedder struct {
	api   *cohereclient.Client
	model string
	dim   int
}

type CohereEmbedderOption func(*CohereEmbedder)

func NewCohereEmbedder(options ...CohereEmbedderOption) *CohereEmbedder {
	embedder := &CohereEmbedder{
		model: "embed-english-light-v3.0",
		dim:   Dimension,
	}

	for _, option := range options {
		option(embedder)
	}

	return embedder
}

func (embedder *CohereEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := embedder.embed(ctx, []string{text}, cohere.EmbedInputTypeSearchQuery)
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

func (embedder *CohereEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedder.embed(ctx, texts, cohere.EmbedInputTypeSearchDocument)
}

func (embedder *CohereEmbedder) embed(
	ctx context.Context, texts []string, inputType cohere.EmbedInputType,
) ([][]float32, error) {
	model := embedder.model

	resp, err := embedder.api.Embed(ctx, &cohere.EmbedRequest{
		Model:     &model,
		Texts:     texts,
		InputType: &inputType,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere embed: %w", err)
	}

	floats := resp.GetEmbeddingsFloats()
	if floats == nil || len(floats.Embeddings) != len(texts) {
		return nil, fmt.Errorf("cohere returned no float embeddings for %d inputs", len(texts))
	}

	out := make([][]float32, len(floats.Embeddings))
	for i, embedding := range floats.Embeddings {
		out[i] = utils.ConvertToFloat32(embedding)
	}

	if err := checkDimension(embedder.dim, out...); err != nil {
		return nil, err
	}

	return out, nil
}

func (embedder *CohereEmbedder) Dim() int {
	return embedder.dim
}

func WithCohereEmbedderModel(model string) CohereEmbedderOption {
	return func(embedder *CohereEmbedder) {
		embedder.model = model
	}
}

func WithCohereEmbedderClient(apiKey, baseURL string) CohereEmbedderOption {
	return func(embedder *CohereEmbedder) {
		opts := []cohereoption.RequestOption{cohereoption.WithToken(apiKey)}

		if baseURL != "" {
			opts = append(opts, cohereoption.WithBaseURL(baseURL))
		}

		embedder.api = cohereclient.NewClient(opts...)
	}
}

func WithCohereEmbedderDimension(dim int) CohereEmbedderOption {
	return func(embedder *CohereEmbedder) {
		embedder.dim = dim
	}
}
