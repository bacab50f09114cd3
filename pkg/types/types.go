package types

// This package holds the plain data carried through the retrieval pipeline:
// what the vector index and the knowledge graph return for a single query,
// the two-message prompt sent to the chat backend and the conversation
// entries kept per web session.
//
// Every struct keeps the snake_cased field names used by the HTTP API and by
// the dataset file so the default `encoding/json` marshaller can be used
// without bespoke glue code.

import (
	"time"

	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

// ===== Retrieval =================================================================================

// VectorMatch is a single record returned by nearest-neighbour search over the
// embedded place descriptions. It is immutable and scoped to one query.
type VectorMatch struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Score       float64  `json:"score"`
}

// GraphFact is a (source, relation, target) triple read from the knowledge
// graph, one hop away from a node that matched the query.
type GraphFact struct {
	SourceID          string `json:"source_id"`
	SourceName        string `json:"source_name"`
	Relation          string `json:"rel"`
	TargetID          string `json:"target_id"`
	TargetName        string `json:"target_name"`
	TargetDescription string `json:"target_desc"`
}

// MaxFactDescription caps the target description stored on a GraphFact.
const MaxFactDescription = 200

// NewGraphFact builds a fact, truncating the target description.
func NewGraphFact(sourceID, sourceName, relation, targetID, targetName, targetDesc string) GraphFact {
	return GraphFact{
		SourceID:          sourceID,
		SourceName:        sourceName,
		Relation:          relation,
		TargetID:          targetID,
		TargetName:        targetName,
		TargetDescription: utils.Truncate(targetDesc, MaxFactDescription),
	}
}

// ===== Prompt ====================================================================================

// Roles understood by every chat backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Prompt is the ordered message sequence sent to the chat backend. The
// composer always produces exactly two entries: system, then user.
type Prompt []Message

// System returns the content of the first system message, if any.
func (prompt Prompt) System() string {
	for _, msg := range prompt {
		if msg.Role == RoleSystem {
			return msg.Content
		}
	}

	return ""
}

// User returns the content of the last user message, if any.
func (prompt Prompt) User() string {
	for i := len(prompt) - 1; i >= 0; i-- {
		if prompt[i].Role == RoleUser {
			return prompt[i].Content
		}
	}

	return ""
}

// ===== Conversation ==============================================================================

// Sources counts how many retrieval results backed an assistant answer.
type Sources struct {
	VectorResults int `json:"vector_results"`
	GraphResults  int `json:"graph_results"`
}

// ConversationEntry is one message of a web session's history.
type ConversationEntry struct {
	Type      string   `json:"type"`
	Message   string   `json:"message"`
	Sources   *Sources `json:"sources,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// NewUserEntry stamps a user message with the current time.
func NewUserEntry(message string) ConversationEntry {
	return ConversationEntry{
		Type:      RoleUser,
		Message:   message,
		Timestamp: Timestamp(time.Now()),
	}
}

// NewAssistantEntry stamps an assistant answer with its retrieval counts.
func NewAssistantEntry(message string, sources Sources) ConversationEntry {
	return ConversationEntry{
		Type:      RoleAssistant,
		Message:   message,
		Sources:   &sources,
		Timestamp: Timestamp(time.Now()),
	}
}

// Timestamp renders t the way every API response does.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}
