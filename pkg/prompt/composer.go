/*
Package prompt turns retrieval results into the two-message prompt sent to
the chat backend. It is a pure formatting layer: no state, no failure modes.
*/
package prompt

import (
	"fmt"
	"strings"

	"github.com/theapemachine/hybrid-travel/pkg/types"
	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

const (
	MaxDescription         = 300
	MaxSummaryEntries      = 8
	MaxSummaryTags         = 3
	MaxRelationships       = 10
	MaxRelationDescription = 100
)

// Placeholders used when a section has nothing to show.
const (
	NoDetailedMatches = "No specific matches found in database"
	NoSummaryMatches  = "No relevant matches found"
	NoRelationships   = "No relationships found"
	NoDescription     = "No description available"
)

const systemInstruction = `You are an expert Vietnam travel assistant. You have access to a comprehensive database of Vietnam travel information including destinations, activities, hotels, and attractions.

IMPORTANT: Use the provided search results to give specific, detailed, and accurate answers. Always reference the actual places, activities, and information from the search results.

Your responses should be:
1. Specific and detailed using the provided data
2. Include practical information (prices, timing, locations)
3. Well-structured with clear sections
4. Actionable with concrete recommendations
5. Based on the actual search results provided

If the user asks about specific topics like zoos, museums, restaurants, or activities, use the search results to provide detailed information about those specific places.`

const userInstruction = "Please provide a comprehensive answer using the search results above. " +
	"Include specific names, locations, and details from the database. " +
	"If asking about specific types of places (like zoos, museums, restaurants), list them with details from the search results."

/*
Build wraps the formatted search context and the fixed system instruction
into a system + user prompt.
*/
func Build(query string, matches []types.VectorMatch, facts []types.GraphFact) types.Prompt {
	user := fmt.Sprintf(
		"\n%s\n\nUSER QUESTION: %s\n\n%s\n",
		Context(query, matches, facts), query, userInstruction,
	)

	return types.Prompt{
		{Role: types.RoleSystem, Content: SystemInstruction()},
		{Role: types.RoleUser, Content: user},
	}
}

// SystemInstruction is the fixed persona given to every chat backend.
func SystemInstruction() string {
	return systemInstruction
}

/*
Context renders the three search sections: a detailed listing of every
match, a condensed summary of at most eight matches and at most ten
relationship lines.
*/
func Context(query string, matches []types.VectorMatch, facts []types.GraphFact) string {
	return fmt.Sprintf(
		"\nSEARCH RESULTS FOR: \"%s\"\n\n=== DETAILED INFORMATION ===\n%s\n\n=== SUMMARY ===\n%s\n\n=== RELATIONSHIPS ===\n%s\n",
		query, Detailed(matches), Summary(matches), Relationships(facts),
	)
}

// Detailed renders one entry per match, in the order given.
func Detailed(matches []types.VectorMatch) string {
	if len(matches) == 0 {
		return NoDetailedMatches
	}

	var sb strings.Builder

	for i, match := range matches {
		sb.WriteString(DetailEntry(i+1, match))
	}

	return sb.String()
}

// DetailEntry renders a single numbered match.
func DetailEntry(n int, match types.VectorMatch) string {
	tags := "N/A"
	if len(match.Tags) > 0 {
		tags = strings.Join(match.Tags, ", ")
	}

	desc := NoDescription
	if match.Description != "" {
		desc = utils.Truncate(match.Description, MaxDescription)
	}

	return fmt.Sprintf(
		"\n%d. %s (%s)\n   Location: %s\n   Tags: %s\n   Description: %s\n   Relevance Score: %.3f\n",
		n, match.Name, match.Type, match.Location, tags, desc, match.Score,
	)
}

// Summary renders a bullet per match, capped at MaxSummaryEntries.
func Summary(matches []types.VectorMatch) string {
	if len(matches) == 0 {
		return NoSummaryMatches
	}

	lines := make([]string, 0, MaxSummaryEntries)

	for _, match := range utils.Head(matches, MaxSummaryEntries) {
		line := fmt.Sprintf("• %s (%s)", match.Name, match.Type)

		if match.Location != "" {
			line += " in " + match.Location
		}

		if len(match.Tags) > 0 {
			line += " - " + strings.Join(utils.Head(match.Tags, MaxSummaryTags), ", ")
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// Relationships renders a bullet per fact, capped at MaxRelationships.
func Relationships(facts []types.GraphFact) string {
	if len(facts) == 0 {
		return NoRelationships
	}

	lines := make([]string, 0, MaxRelationships)

	for _, fact := range utils.Head(facts, MaxRelationships) {
		line := fmt.Sprintf("• %s → %s → %s", fact.SourceName, fact.Relation, fact.TargetName)

		if fact.TargetDescription != "" {
			line += ": " + utils.Truncate(fact.TargetDescription, MaxRelationDescription) + "..."
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
