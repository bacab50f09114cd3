package qdrant

import (
	"strconv"

	sdk "github.com/qdrant/go-client/qdrant"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

const unknown = "Unknown"

// Payload is what gets stored next to a place's vector.
func Payload(place types.Place) map[string]any {
	tags := make([]any, 0, len(place.Tags))
	for _, tag := range place.Tags {
		tags = append(tags, tag)
	}

	payload := map[string]any{
		"id":   place.ID,
		"name": place.Name,
		"type": place.Type,
		"tags": tags,
		"text": place.Text(),
	}

	if place.City != "" {
		payload["city"] = place.City
	}

	if place.Region != "" {
		payload["region"] = place.Region
	}

	if place.Description != "" {
		payload["description"] = place.Description
	}

	return payload
}

/*
ToMatch converts a scored point back into a VectorMatch. Missing names and
types become "Unknown", the location is the city or else the region, and
the description falls back to the embedded text.
*/
func ToMatch(point *sdk.ScoredPoint) types.VectorMatch {
	payload := point.GetPayload()

	match := types.VectorMatch{
		ID:          stringField(payload, "id"),
		Name:        stringField(payload, "name"),
		Type:        stringField(payload, "type"),
		Location:    stringField(payload, "city"),
		Tags:        listField(payload, "tags"),
		Description: stringField(payload, "description"),
		Score:       float64(point.GetScore()),
	}

	if match.ID == "" {
		match.ID = pointID(point.GetId())
	}

	if match.Name == "" {
		match.Name = unknown
	}

	if match.Type == "" {
		match.Type = unknown
	}

	if match.Location == "" {
		match.Location = stringField(payload, "region")
	}

	if match.Description == "" {
		match.Description = stringField(payload, "text")
	}

	return match
}

func stringField(payload map[string]*sdk.Value, key string) string {
	if value, ok := payload[key]; ok {
		return value.GetStringValue()
	}

	return ""
}

func listField(payload map[string]*sdk.Value, key string) []string {
	value, ok := payload[key]
	if !ok {
		return nil
	}

	var out []string

	for _, item := range value.GetListValue().GetValues() {
		if s := item.GetStringValue(); s != "" {
			out = append(out, s)
		}
	}

	return out
}

func pointID(id *sdk.PointId) string {
	if s := id.GetUuid(); s != "" {
		return s
	}

	if num := id.GetNum(); num != 0 {
		return strconv.FormatUint(num, 10)
	}

	return ""
}
