package types

import (
	"encoding/json"
	"strings"
)

// Connection is an outgoing edge declared by a dataset record.
type Connection struct {
	Relation string `json:"relation"`
	Target   string `json:"target"`
}

// Place is one record of the travel dataset. Fields the loaders do not know
// about are kept in Extra so they still end up as graph node properties.
type Place struct {
	ID              string         `json:"id" validate:"required"`
	Type            string         `json:"type"`
	Name            string         `json:"name" validate:"required"`
	City            string         `json:"city,omitempty"`
	Region          string         `json:"region,omitempty"`
	Description     string         `json:"description,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	BestTimeToVisit string         `json:"best_time_to_visit,omitempty"`
	Connections     []Connection   `json:"connections,omitempty"`
	Extra           map[string]any `json:"-"`
}

var knownPlaceFields = map[string]bool{
	"id": true, "type": true, "name": true, "city": true, "region": true,
	"description": true, "tags": true, "best_time_to_visit": true, "connections": true,
}

// UnmarshalJSON decodes the known fields and collects the rest into Extra.
func (place *Place) UnmarshalJSON(data []byte) error {
	type alias Place

	var known alias

	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]any

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*place = Place(known)

	for key, value := range raw {
		if knownPlaceFields[key] {
			continue
		}

		if place.Extra == nil {
			place.Extra = make(map[string]any)
		}

		place.Extra[key] = value
	}

	return nil
}

// Location is the city, falling back to the region.
func (place Place) Location() string {
	if place.City != "" {
		return place.City
	}

	return place.Region
}

// Text is the passage embedded into the vector index for this place.
func (place Place) Text() string {
	parts := []string{place.Name}

	if place.Type != "" {
		parts = append(parts, "("+place.Type+")")
	}

	if loc := place.Location(); loc != "" {
		parts = append(parts, "in "+loc)
	}

	text := strings.Join(parts, " ")

	if place.Description != "" {
		text += ". " + place.Description
	}

	if len(place.Tags) > 0 {
		text += " Tags: " + strings.Join(place.Tags, ", ")
	}

	return text
}

// Properties flattens the record into graph node properties. Connections
// are stored as relationships, not properties, and are left out.
func (place Place) Properties() map[string]any {
	props := make(map[string]any, len(place.Extra)+8)

	for key, value := range place.Extra {
		switch value.(type) {
		case string, bool, float64, int64, int:
			props[key] = value
		case []any:
			if strs, ok := stringSlice(value.([]any)); ok {
				props[key] = strs
			}
		}
	}

	props["id"] = place.ID
	props["type"] = place.Type
	props["name"] = place.Name

	if place.City != "" {
		props["city"] = place.City
	}

	if place.Region != "" {
		props["region"] = place.Region
	}

	if place.Description != "" {
		props["description"] = place.Description
	}

	if place.BestTimeToVisit != "" {
		props["best_time_to_visit"] = place.BestTimeToVisit
	}

	tags := place.Tags
	if tags == nil {
		tags = []string{}
	}

	props["tags"] = tags

	return props
}

func stringSlice(values []any) ([]string, bool) {
	out := make([]string, 0, len(values))

	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}

		out = append(out, s)
	}

	return out, true
}
