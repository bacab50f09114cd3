package rag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/hybrid-travel/pkg/embed"
	"github.com/theapemachine/hybrid-travel/pkg/fallback"
	"github.com/theapemachine/hybrid-travel/pkg/metrics"
	"github.com/theapemachine/hybrid-travel/pkg/prompt"
	"github.com/theapemachine/hybrid-travel/pkg/provider"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

// DefaultTopK is how many vector matches back a single answer.
const DefaultTopK = 5

// VectorSearcher finds the places closest to an embedded question.
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, k int) ([]types.VectorMatch, error)
}

// GraphSearcher finds facts one hop away from places named in the question.
// It never fails; an unreachable graph yields no facts.
type GraphSearcher interface {
	Search(ctx context.Context, query string) []types.GraphFact
	Available() bool
}

// Answer is the outcome of one question.
type Answer struct {
	Response      string
	VectorResults int
	GraphResults  int
	Fallback      bool
}

// Sources returns the retrieval counts in the shape stored with the
// conversation.
func (answer Answer) Sources() types.Sources {
	return types.Sources{
		VectorResults: answer.VectorResults,
		GraphResults:  answer.GraphResults,
	}
}

/*
Assistant answers travel questions: the question is embedded, the nearest
places and their graph neighbourhood are put into a prompt, and the chat
backend answers it. When the backend fails, the template generator answers
from the same matches instead.
*/
type Assistant struct {
	embedder embed.Embedder
	vectors  VectorSearcher
	graph    GraphSearcher
	chat     provider.Interface
	metrics  *metrics.Collector
	topK     int
}

type AssistantOption func(*Assistant)

func NewAssistant(options ...AssistantOption) *Assistant {
	assistant := &Assistant{topK: DefaultTopK}

	for _, option := range options {
		option(assistant)
	}

	return assistant
}

/*
Answer runs the full pipeline for query. Embedding and vector search
failures are returned; every chat backend failure is absorbed by the
fallback generator.
*/
func (assistant *Assistant) Answer(ctx context.Context, query string) (Answer, error) {
	start := time.Now()

	matches, err := assistant.retrieve(ctx, query, assistant.topK)
	if err != nil {
		assistant.recordOutcome(metrics.OutcomeFailed, start)
		return Answer{}, err
	}

	facts := assistant.facts(ctx, query)

	log.Info("retrieved context", "query", query, "vector", len(matches), "graph", len(facts))

	if assistant.metrics != nil {
		assistant.metrics.RecordRetrieval(len(matches), len(facts))
	}

	answer := Answer{
		VectorResults: len(matches),
		GraphResults:  len(facts),
	}

	response, err := assistant.complete(ctx, prompt.Build(query, matches, facts))
	if err != nil {
		reason := fallbackReason(err)

		log.Warn("chat backend failed, using fallback", "reason", reason, "error", err)

		if assistant.metrics != nil {
			assistant.metrics.RecordFallback(reason)
		}

		answer.Response = fallback.Generate(query, matches)
		answer.Fallback = true
		assistant.recordOutcome(metrics.OutcomeFallback, start)

		return answer, nil
	}

	answer.Response = response
	assistant.recordOutcome(metrics.OutcomeAnswered, start)

	return answer, nil
}

func (assistant *Assistant) retrieve(ctx context.Context, query string, k int) ([]types.VectorMatch, error) {
	if assistant.embedder == nil || assistant.vectors == nil {
		return nil, errors.New("assistant has no vector search configured")
	}

	vector, err := assistant.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := assistant.vectors.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search vectors: %w", err)
	}

	return matches, nil
}

func (assistant *Assistant) facts(ctx context.Context, query string) []types.GraphFact {
	if assistant.graph == nil {
		return nil
	}

	return assistant.graph.Search(ctx, query)
}

func (assistant *Assistant) complete(ctx context.Context, prompt types.Prompt) (string, error) {
	if assistant.chat == nil {
		return "", errNoBackend
	}

	return assistant.chat.Complete(ctx, prompt)
}

func (assistant *Assistant) recordOutcome(outcome string, start time.Time) {
	if assistant.metrics == nil {
		return
	}

	assistant.metrics.RecordOutcome(outcome, time.Since(start).Seconds())
}

var errNoBackend = errors.New("no chat backend configured")

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, provider.ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, errNoBackend):
		return "no_backend"
	}

	return "backend_error"
}

func WithEmbedder(embedder embed.Embedder) AssistantOption {
	return func(assistant *Assistant) {
		assistant.embedder = embedder
	}
}

func WithVectorSearcher(vectors VectorSearcher) AssistantOption {
	return func(assistant *Assistant) {
		assistant.vectors = vectors
	}
}

func WithGraphSearcher(graph GraphSearcher) AssistantOption {
	return func(assistant *Assistant) {
		assistant.graph = graph
	}
}

func WithProvider(chat provider.Interface) AssistantOption {
	return func(assistant *Assistant) {
		assistant.chat = chat
	}
}

func WithMetrics(collector *metrics.Collector) AssistantOption {
	return func(assistant *Assistant) {
		assistant.metrics = collector
	}
}

// WithTopK sets how many vector matches are retrieved. Values below one keep
// the default.
func WithTopK(k int) AssistantOption {
	return func(assistant *Assistant) {
		if k > 0 {
			assistant.topK = k
		}
	}
}
