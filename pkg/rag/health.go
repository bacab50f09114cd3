package rag

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

// Health statuses.
const (
	StatusHealthy = "healthy"
	StatusLimited = "limited"
)

const (
	healthQuery  = "test"
	healthPrompt = "Hello"
)

// Health reports which parts of the pipeline currently work.
type Health struct {
	VectorSearch bool `json:"vector_search"`
	GraphSearch  bool `json:"graph_search"`
	AIChat       bool `json:"ai_chat"`
}

// Status is healthy when both vector search and the chat backend answer.
// The graph is optional and never degrades the status.
func (health Health) Status() string {
	if health.VectorSearch && health.AIChat {
		return StatusHealthy
	}

	return StatusLimited
}

/*
Health probes each dependency with a throwaway request. A vector search that
errors is returned as an error; one that answers with nothing only marks
vector search unhealthy.
*/
func (assistant *Assistant) Health(ctx context.Context) (Health, error) {
	var health Health

	matches, err := assistant.retrieve(ctx, healthQuery, 1)
	if err != nil {
		return health, fmt.Errorf("vector search probe: %w", err)
	}

	health.VectorSearch = len(matches) > 0

	if assistant.graph != nil {
		assistant.graph.Search(ctx, healthQuery)
		health.GraphSearch = assistant.graph.Available()
	}

	if _, err := assistant.complete(ctx, types.Prompt{
		{Role: types.RoleUser, Content: healthPrompt},
	}); err != nil {
		log.Warn("chat backend probe failed", "error", err)
	} else {
		health.AIChat = true
	}

	return health, nil
}
