package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/hybrid-travel/pkg/config"
	"github.com/theapemachine/hybrid-travel/pkg/embed"
	"github.com/theapemachine/hybrid-travel/pkg/metrics"
	"github.com/theapemachine/hybrid-travel/pkg/provider"
	"github.com/theapemachine/hybrid-travel/pkg/rag"
	"github.com/theapemachine/hybrid-travel/pkg/stores/neo4j"
	"github.com/theapemachine/hybrid-travel/pkg/stores/qdrant"
)

// components holds everything the serve and chat commands share.
type components struct {
	cfg       *config.Config
	embedder  embed.Embedder
	vectors   *qdrant.Store
	graph     *neo4j.Store
	metrics   *metrics.Collector
	assistant *rag.Assistant
}

/*
newComponents validates the configuration and connects every backend. A
missing credential or an unusable vector index is fatal; an unreachable
graph only disables graph search.
*/
func newComponents(ctx context.Context) (*components, error) {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	embedder, err := embed.New(cfg.Embedding, cfg.Keys)
	if err != nil {
		return nil, err
	}

	vectors, err := qdrant.Connect(cfg.Qdrant)
	if err != nil {
		embed.Close(embedder)
		return nil, err
	}

	chat, err := provider.New(cfg.Chat, cfg.Keys)
	if err != nil {
		embed.Close(embedder)
		vectors.Close()
		return nil, err
	}

	graph := neo4j.Connect(ctx, cfg.Neo4j)
	collector := metrics.NewCollector()

	log.Info(
		"backends ready",
		"embedding", cfg.Embedding.Provider,
		"collection", vectors.Collection(),
		"graph", graph.Available(),
		"chat", chat.Name(),
	)

	return &components{
		cfg:      cfg,
		embedder: embedder,
		vectors:  vectors,
		graph:    graph,
		metrics:  collector,
		assistant: rag.NewAssistant(
			rag.WithEmbedder(embedder),
			rag.WithVectorSearcher(vectors),
			rag.WithGraphSearcher(graph),
			rag.WithProvider(chat),
			rag.WithMetrics(collector),
			rag.WithTopK(cfg.Qdrant.TopK),
		),
	}, nil
}

func (c *components) Close(ctx context.Context) {
	if err := c.graph.Close(ctx); err != nil {
		log.Warn("failed to close graph driver", "error", err)
	}

	if err := c.vectors.Close(); err != nil {
		log.Warn("failed to close vector client", "error", err)
	}

	if err := embed.Close(c.embedder); err != nil {
		log.Warn("failed to release embedding model", "error", err)
	}
}
