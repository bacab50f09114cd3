/*
Package fallback produces a canned Markdown answer when the chat backend is
unavailable. It works from the retrieval results directly, so it never has
to recover anything from the rendered prompt.
*/
package fallback

import (
	"fmt"
	"strings"

	"github.com/theapemachine/hybrid-travel/pkg/types"
	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

const (
	MaxMatches     = 8
	MaxPerType     = 3
	MaxTags        = 3
	MaxDescription = 150
)

/*
Generate answers query from matches alone. With matches it groups them by
place type, otherwise it picks one of the topic templates by keyword.
*/
func Generate(query string, matches []types.VectorMatch) string {
	if len(matches) > 0 {
		return Recommendations(query, matches)
	}

	return Topic(query)
}

type group struct {
	kind   string
	places []types.VectorMatch
}

// Recommendations renders matches grouped by type in first-seen order.
func Recommendations(query string, matches []types.VectorMatch) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🇻🇳 **Vietnam Travel Recommendations for: %s**\n\n", query))

	groups := groupByType(utils.Head(matches, MaxMatches))

	if len(groups) == 0 {
		sb.WriteString("I found several relevant options in our database. ")
		return sb.String()
	}

	total := 0

	for _, g := range groups {
		total += len(g.places)

		sb.WriteString(fmt.Sprintf("## %ss\n", g.kind))

		for _, place := range utils.Head(g.places, MaxPerType) {
			sb.WriteString(fmt.Sprintf("• **%s**", place.Name))

			if place.Location != "" {
				sb.WriteString(" - " + place.Location)
			}

			if len(place.Tags) > 0 {
				sb.WriteString(" (" + strings.Join(utils.Head(place.Tags, MaxTags), ", ") + ")")
			}

			sb.WriteString("\n")

			if place.Description != "" {
				sb.WriteString("  " + utils.Ellipsize(place.Description, MaxDescription) + "\n")
			}
		}

		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("💡 **Found %d relevant options** in our Vietnam travel database.\n\n", total))
	sb.WriteString(Tip(query))

	return sb.String()
}

func groupByType(matches []types.VectorMatch) []*group {
	var (
		groups []*group
		index  = make(map[string]*group)
	)

	for _, match := range matches {
		if match.Name == "" || match.Type == "" {
			continue
		}

		g, ok := index[match.Type]
		if !ok {
			g = &group{kind: match.Type}
			index[match.Type] = g
			groups = append(groups, g)
		}

		g.places = append(g.places, match)
	}

	return groups
}

// Tip returns the practical advice line matching the query, or "".
func Tip(query string) string {
	q := strings.ToLower(query)

	switch {
	case utils.ContainsAny(q, "hotel", "accommodation"):
		return bookingTip
	case utils.ContainsAny(q, "food", "restaurant"):
		return foodTip
	case utils.ContainsAny(q, "attraction", "sightseeing"):
		return visitingTip
	case strings.Contains(q, "activity"):
		return activityTip
	}

	return ""
}

// Topic selects a hardcoded template by keyword on the lowercased query.
func Topic(query string) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "zoo"):
		return ZooTemplate
	case strings.Contains(q, "museum"):
		return MuseumTemplate
	case utils.ContainsAny(q, "romantic", "couple"):
		return RomanticTemplate
	case utils.ContainsAny(q, "food", "culinary"):
		return FoodTemplate
	}

	return fmt.Sprintf(genericTemplate, query, query)
}
