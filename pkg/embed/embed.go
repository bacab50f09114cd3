/*
Package embed turns text into the fixed-size vectors stored in the vector
index. Every backend produces vectors of the same dimension so the index can
be queried regardless of which one loaded it.
*/
package embed

import (
	"context"
	"fmt"

	"github.com/theapemachine/hybrid-travel/pkg/config"
)

// Dimension of all-MiniLM-L6-v2 and of every backend configured to match it.
const Dimension = 384

/*
Embedder maps text to a vector. Embed is used for queries, EmbedBatch for
the passages loaded into the index.
*/
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dim() int
}

/*
New builds the embedder selected by cfg.Provider. The local fastembed model
is the default.
*/
func New(cfg config.Embedding, keys config.Keys) (Embedder, error) {
	dim := cfg.Dimension
	if dim <= 0 {
		dim = Dimension
	}

	switch cfg.Provider {
	case "", "fastembed", "local":
		return NewFastEmbedder(
			WithFastEmbedCacheDir(cfg.CacheDir),
			WithFastEmbedBatchSize(cfg.BatchSize),
		)
	case "ollama":
		return NewOllamaEmbedder(
			WithOllamaEmbedderModel(orDefault(cfg.Model, "all-minilm")),
			WithOllamaEmbedderHost(cfg.BaseURL),
			WithOllamaEmbedderDimension(dim),
		)
	case "openai":
		return NewOpenAIEmbedder(
			WithOpenAIEmbedderModel(orDefault(cfg.Model, "text-embedding-3-small")),
			WithOpenAIEmbedderClient(keys.OpenAI, cfg.BaseURL),
			WithOpenAIEmbedderDimension(dim),
		), nil
	case "cohere":
		return NewCohereEmbedder(
			WithCohereEmbedderModel(orDefault(cfg.Model, "embed-english-light-v3.0")),
			WithCohereEmbedderClient(keys.Cohere, cfg.BaseURL),
			WithCohereEmbedderDimension(dim),
		), nil
	}

	return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
}

// Close releases any native resources held by embedder.
func Close(embedder Embedder) error {
	if closer, ok := embedder.(interface{ Close() error }); ok {
		return closer.Close()
	}

	return nil
}

func checkDimension(want int, vectors ...[]float32) error {
	for _, vector := range vectors {
		if len(vector) != want {
			return fmt.Errorf("embedding has %d dimensions, expected %d", len(vector), want)
		}
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
