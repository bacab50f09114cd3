package embed

import (
	"context"
	"fmt"
	"runtime"

	fastembed "github.com/anush008/fastembed-go"
)

/*
FastEmbedder runs all-MiniLM-L6-v2 in process through ONNX runtime. The model
is downloaded into the cache directory on first use.

MiniLM is symmetric: queries and passages are embedded as raw text, without
the "query: " and "passage: " prefixes QueryEmbed and PassageEmbed add.
*/
type FastEmbedder struct {
	model     *fastembed.FlagEmbedding
	encode    func(texts []string, batchSize int) ([][]float32, error)
	cacheDir  string
	maxLength int
	batchSize int
}

type FastEmbedderOption func(*FastEmbedder)

func NewFastEmbedder(options ...FastEmbedderOption) (*FastEmbedder, error) {
	embedder := &FastEmbedder{
		cacheDir:  "local_cache",
		maxLength: 256,
		batchSize: 64,
	}

	for _, option := range options {
		option(embedder)
	}

	if limit := 4 * runtime.GOMAXPROCS(0); embedder.batchSize > limit {
		embedder.batchSize = limit
	}

	model, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:     fastembed.AllMiniLML6V2,
		CacheDir:  embedder.cacheDir,
		MaxLength: embedder.maxLength,
	})
	if err != nil {
		return nil, fmt.Errorf("load embedding model: %w", err)
	}

	embedder.model = model
	embedder.encode = model.Embed

	return embedder, nil
}

func (embedder *FastEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := embedder.encode([]string{text}, 1)
	if err != nil {
		return nil, fmt.Errorf("query embed: %w", err)
	}

	if len(vectors) != 1 {
		return nil, fmt.Errorf("query embed: got %d vectors for 1 text", len(vectors))
	}

	return vectors[0], nil
}

func (embedder *FastEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := embedder.encode(texts, embedder.batchSize)
	if err != nil {
		return nil, fmt.Errorf("passage embed: %w", err)
	}

	return vectors, nil
}

func (embedder *FastEmbedder) Dim() int {
	return Dimension
}

func (embedder *FastEmbedder) Close() error {
	if embedder.model != nil {
		embedder.model.Destroy()
	}

	return nil
}

func WithFastEmbedCacheDir(dir string) FastEmbedderOption {
	return func(embedder *FastEmbedder) {
		if dir != "" {
			embedder.cacheDir = dir
		}
	}
}

func WithFastEmbedBatchSize(size int) FastEmbedderOption {
	return func(embedder *FastEmbedder) {
		if size > 0 {
			embedder.batchSize = size
		}
	}
}
