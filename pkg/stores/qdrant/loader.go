package qdrant

import (
	"context"
	"fmt"

	"github.com/theapemachine/hybrid-travel/pkg/types"
)

// DefaultBatchSize is how many places are embedded and upserted per request.
const DefaultBatchSize = 32

// PassageEmbedder embeds the documents written to the index.
type PassageEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dim() int
}

/*
Load creates the collection if needed, then embeds and upserts places in
batches. Point ids derive from the place ids, so loading twice overwrites.
*/
func (store *Store) Load(
	ctx context.Context,
	embedder PassageEmbedder,
	places []types.Place,
	batchSize int,
	progress func(done, total int),
) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	if progress == nil {
		progress = func(int, int) {}
	}

	if err := store.EnsureCollection(ctx, embedder.Dim()); err != nil {
		return err
	}

	for start := 0; start < len(places); start += batchSize {
		end := min(start+batchSize, len(places))
		batch := places[start:end]

		texts := make([]string, len(batch))
		for i, place := range batch {
			texts[i] = place.Text()
		}

		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed places %d-%d: %w", start, end, err)
		}

		if err := store.Upsert(ctx, batch, vectors); err != nil {
			return err
		}

		progress(end, len(places))
	}

	return nil
}
