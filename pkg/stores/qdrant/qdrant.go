/*
Package qdrant is the vector index: nearest-neighbour search over the
embedded place descriptions, plus the upserts that load them.
*/
package qdrant

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	sdk "github.com/qdrant/go-client/qdrant"
	"github.com/theapemachine/hybrid-travel/pkg/config"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

// DefaultTopK is used when a search asks for zero or fewer results.
const DefaultTopK = 5

/*
Backend is the part of the Qdrant client the store uses. *sdk.Client
satisfies it.
*/
type Backend interface {
	Query(ctx context.Context, request *sdk.QueryPoints) ([]*sdk.ScoredPoint, error)
	Upsert(ctx context.Context, request *sdk.UpsertPoints) (*sdk.UpdateResult, error)
	Count(ctx context.Context, request *sdk.CountPoints) (uint64, error)
	ListCollections(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, request *sdk.CreateCollection) error
	Close() error
}

// Store wraps a backend and a collection name.
type Store struct {
	backend    Backend
	collection string
}

type StoreOption func(*Store)

func NewStore(options ...StoreOption) *Store {
	store := &Store{collection: "vietnam-travel"}

	for _, option := range options {
		option(store)
	}

	return store
}

// Connect dials Qdrant over gRPC with the configured credentials.
func Connect(cfg config.Qdrant) (*Store, error) {
	client, err := sdk.NewClient(&sdk.Config{
		Host:                   cfg.Host,
		Port:                   cfg.Port,
		APIKey:                 cfg.APIKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return NewStore(
		WithBackend(client),
		WithCollection(cfg.Collection),
	), nil
}

// Collection returns the collection name searched by the store.
func (store *Store) Collection() string {
	return store.collection
}

/*
Search returns the k nearest places to vector, in the order and with the
scores the index reports.
*/
func (store *Store) Search(ctx context.Context, vector []float32, k int) ([]types.VectorMatch, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	limit := uint64(k)

	points, err := store.backend.Query(ctx, &sdk.QueryPoints{
		CollectionName: store.collection,
		Query:          sdk.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    sdk.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	matches := make([]types.VectorMatch, 0, len(points))

	for _, point := range points {
		matches = append(matches, ToMatch(point))
	}

	log.Debug("vector search", "collection", store.collection, "k", k, "results", len(matches))

	return matches, nil
}

// EnsureCollection creates a cosine collection of dim if it does not exist.
func (store *Store) EnsureCollection(ctx context.Context, dim int) error {
	collections, err := store.backend.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range collections {
		if name == store.collection {
			return nil
		}
	}

	log.Info("creating collection", "name", store.collection, "dim", dim)

	if err := store.backend.CreateCollection(ctx, &sdk.CreateCollection{
		CollectionName: store.collection,
		VectorsConfig: sdk.NewVectorsConfig(&sdk.VectorParams{
			Size:     uint64(dim),
			Distance: sdk.Distance_Cosine,
		}),
	}); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

/*
Upsert writes one point per place. Point ids are derived from the place id,
so loading the same dataset twice overwrites instead of duplicating.
*/
func (store *Store) Upsert(ctx context.Context, places []types.Place, vectors [][]float32) error {
	if len(places) != len(vectors) {
		return fmt.Errorf("upsert: %d places but %d vectors", len(places), len(vectors))
	}

	if len(places) == 0 {
		return nil
	}

	wait := true
	points := make([]*sdk.PointStruct, 0, len(places))

	for i, place := range places {
		points = append(points, &sdk.PointStruct{
			Id:      sdk.NewIDUUID(PointID(place.ID)),
			Vectors: sdk.NewVectors(vectors[i]...),
			Payload: sdk.NewValueMap(Payload(place)),
		})
	}

	if _, err := store.backend.Upsert(ctx, &sdk.UpsertPoints{
		CollectionName: store.collection,
		Wait:           &wait,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// Count returns the number of points in the collection.
func (store *Store) Count(ctx context.Context) (uint64, error) {
	exact := true

	count, err := store.backend.Count(ctx, &sdk.CountPoints{
		CollectionName: store.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}

	return count, nil
}

func (store *Store) Close() error {
	if store.backend == nil {
		return nil
	}

	return store.backend.Close()
}

// PointID maps a dataset id onto a stable UUID.
func PointID(id string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(id)).String()
}

func WithBackend(backend Backend) StoreOption {
	return func(store *Store) {
		store.backend = backend
	}
}

func WithCollection(collection string) StoreOption {
	return func(store *Store) {
		if collection != "" {
			store.collection = collection
		}
	}
}
