/*
Package neo4j is the optional knowledge graph. When the database cannot be
reached at startup the store comes up disabled and every search returns no
facts, so the rest of the pipeline keeps working on vector results alone.
*/
package neo4j

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	sdk "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/theapemachine/hybrid-travel/pkg/config"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

// ErrUnavailable is returned by writes against a disabled store.
var ErrUnavailable = errors.New("graph database unavailable")

const searchQuery = `MATCH (n:Entity)-[r]-(m:Entity)
WHERE toLower(n.name) CONTAINS toLower($query)
OR toLower(n.description) CONTAINS toLower($query)
OR any(tag IN n.tags WHERE toLower(tag) CONTAINS toLower($query))
RETURN n.id AS source_id, n.name AS source_name,
type(r) AS rel, m.id AS target_id, m.name AS target_name,
m.description AS target_desc
LIMIT 10`

/*
Runner executes a single Cypher statement and returns its records as maps.
The driver-backed implementation is built by Connect; tests supply their own.
*/
type Runner interface {
	Read(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
	Write(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
	Close(ctx context.Context) error
}

// Store is the graph client. A Store without a runner is disabled.
type Store struct {
	runner Runner
}

type StoreOption func(*Store)

func NewStore(options ...StoreOption) *Store {
	store := &Store{}

	for _, option := range options {
		option(store)
	}

	return store
}

/*
Connect opens a driver and verifies connectivity within cfg.Timeout. Any
failure is logged and yields a disabled store, never an error.
*/
func Connect(ctx context.Context, cfg config.Neo4j) *Store {
	if !cfg.Enabled {
		log.Info("graph search disabled by configuration")
		return NewStore()
	}

	auth := sdk.NoAuth()
	if cfg.Password != "" {
		auth = sdk.BasicAuth(cfg.User, cfg.Password, "")
	}

	driver, err := sdk.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		log.Warn("Neo4j not available, continuing with vector search only", "uri", cfg.URI, "error", err)
		return NewStore()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		log.Warn("Neo4j not available, continuing with vector search only", "uri", cfg.URI, "error", err)
		_ = driver.Close(ctx)

		return NewStore()
	}

	log.Info("Neo4j connected", "uri", cfg.URI)

	return NewStore(WithRunner(&driverRunner{driver: driver, database: cfg.Database}))
}

// Available reports whether the graph is connected.
func (store *Store) Available() bool {
	return store != nil && store.runner != nil
}

/*
Search returns up to ten one-hop facts around nodes whose name, description
or tags contain query, case-insensitively. It never fails: a disabled store
or a query error both yield an empty list.
*/
func (store *Store) Search(ctx context.Context, query string) []types.GraphFact {
	facts := []types.GraphFact{}

	if !store.Available() {
		log.Debug("graph search skipped, Neo4j not available")
		return facts
	}

	records, err := store.runner.Read(ctx, searchQuery, map[string]any{"query": query})
	if err != nil {
		log.Warn("graph query failed", "error", err)
		return facts
	}

	for _, record := range records {
		facts = append(facts, types.NewGraphFact(
			asString(record["source_id"]),
			asString(record["source_name"]),
			asString(record["rel"]),
			asString(record["target_id"]),
			asString(record["target_name"]),
			asString(record["target_desc"]),
		))
	}

	log.Debug("graph search", "query", query, "facts", len(facts))

	return facts
}

func (store *Store) Close(ctx context.Context) error {
	if !store.Available() {
		return nil
	}

	return store.runner.Close(ctx)
}

func WithRunner(runner Runner) StoreOption {
	return func(store *Store) {
		store.runner = runner
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
