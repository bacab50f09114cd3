package neo4j

import (
	"context"
	"fmt"
	"regexp"

	"github.com/theapemachine/hybrid-travel/pkg/types"
)

const (
	DefaultLabel    = "Unknown"
	DefaultRelation = "RELATED_TO"
)

var (
	identifier   = regexp.MustCompile(`[^A-Za-z0-9_]`)
	alphanumeric = regexp.MustCompile(`[A-Za-z0-9]`)
)

// Labels and relationship types cannot be passed as parameters, so they are
// reduced to identifier characters before being spliced into the statement.
func sanitize(name, fallback string) string {
	clean := identifier.ReplaceAllString(name, "_")

	if !alphanumeric.MatchString(clean) {
		return fallback
	}

	return clean
}

// CreateConstraints makes Entity ids unique.
func (store *Store) CreateConstraints(ctx context.Context) error {
	if !store.Available() {
		return ErrUnavailable
	}

	if _, err := store.runner.Write(
		ctx, "CREATE CONSTRAINT IF NOT EXISTS FOR (n:Entity) REQUIRE n.id IS UNIQUE", nil,
	); err != nil {
		return fmt.Errorf("create constraints: %w", err)
	}

	return nil
}

/*
UpsertPlace merges a node labelled with the place type and Entity, then sets
every property of the record except its connections.
*/
func (store *Store) UpsertPlace(ctx context.Context, place types.Place) error {
	if !store.Available() {
		return ErrUnavailable
	}

	query := fmt.Sprintf(
		"MERGE (n:`%s`:Entity {id: $id}) SET n += $props",
		sanitize(place.Type, DefaultLabel),
	)

	if _, err := store.runner.Write(ctx, query, map[string]any{
		"id":    place.ID,
		"props": place.Properties(),
	}); err != nil {
		return fmt.Errorf("upsert %s: %w", place.ID, err)
	}

	return nil
}

/*
CreateRelationship merges an edge from sourceID to the connection's target.
Connections without a target are skipped, an empty relation becomes
RELATED_TO. Nothing is created when either node is missing.
*/
func (store *Store) CreateRelationship(ctx context.Context, sourceID string, conn types.Connection) error {
	if !store.Available() {
		return ErrUnavailable
	}

	if conn.Target == "" {
		return nil
	}

	query := fmt.Sprintf(
		"MATCH (a:Entity {id: $source_id}), (b:Entity {id: $target_id}) MERGE (a)-[r:`%s`]->(b) RETURN r",
		sanitize(conn.Relation, DefaultRelation),
	)

	if _, err := store.runner.Write(ctx, query, map[string]any{
		"source_id": sourceID,
		"target_id": conn.Target,
	}); err != nil {
		return fmt.Errorf("relate %s -> %s: %w", sourceID, conn.Target, err)
	}

	return nil
}

/*
Load writes the constraint, every node, then every relationship. Nodes go
first so relationships can find both ends.
*/
func (store *Store) Load(ctx context.Context, places []types.Place, progress func(stage string, done, total int)) error {
	if progress == nil {
		progress = func(string, int, int) {}
	}

	if err := store.CreateConstraints(ctx); err != nil {
		return err
	}

	for i, place := range places {
		if err := store.UpsertPlace(ctx, place); err != nil {
			return err
		}

		progress("nodes", i+1, len(places))
	}

	for i, place := range places {
		for _, conn := range place.Connections {
			if err := store.CreateRelationship(ctx, place.ID, conn); err != nil {
				return err
			}
		}

		progress("relationships", i+1, len(places))
	}

	return nil
}
