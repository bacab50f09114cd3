package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theapemachine/hybrid-travel/pkg/config"
	"github.com/theapemachine/hybrid-travel/pkg/embed"
	"github.com/theapemachine/hybrid-travel/pkg/stores/neo4j"
	"github.com/theapemachine/hybrid-travel/pkg/stores/qdrant"
	"github.com/theapemachine/hybrid-travel/pkg/ui"
)

type setupCheck struct {
	name string
	run  func(ctx context.Context, cfg *config.Config) (string, error)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check credentials, the embedding model and the stores",
	Long:  longVerify,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.Load()

		checks := []setupCheck{
			{"Credentials", verifyCredentials},
			{"Embedding model", verifyEmbedding},
			{"Vector index", verifyVectors},
			{"Knowledge graph (optional)", verifyGraph},
		}

		failed := false

		for _, check := range checks {
			fmt.Printf("\nChecking %s...\n", check.name)

			detail, err := check.run(ctx, cfg)
			if err != nil {
				fmt.Println(ui.ErrorStyle.Render("✗ ") + err.Error())

				if check.name != "Knowledge graph (optional)" {
					failed = true
				}

				continue
			}

			fmt.Println(ui.AssistantStyle.Render("✓ ") + detail)
		}

		if failed {
			return errors.New("some checks failed, fix the issues above")
		}

		fmt.Println(ui.AssistantStyle.Render("\nAll checks passed."))
		fmt.Println("Next: hybrid-travel ingest, then hybrid-travel serve or hybrid-travel chat.")

		return nil
	},
}

func verifyCredentials(ctx context.Context, cfg *config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	return "required credentials found", nil
}

func verifyEmbedding(ctx context.Context, cfg *config.Config) (string, error) {
	embedder, err := embed.New(cfg.Embedding, cfg.Keys)
	if err != nil {
		return "", err
	}
	defer embed.Close(embedder)

	vector, err := embedder.Embed(ctx, "test")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s loaded (dimension: %d)", cfg.Embedding.Provider, len(vector)), nil
}

func verifyVectors(ctx context.Context, cfg *config.Config) (string, error) {
	vectors, err := qdrant.Connect(cfg.Qdrant)
	if err != nil {
		return "", err
	}
	defer vectors.Close()

	count, err := vectors.Count(ctx)
	if err != nil {
		return "", err
	}

	if count == 0 {
		return "", fmt.Errorf("collection %q is empty, run ingest first", vectors.Collection())
	}

	return fmt.Sprintf("collection %q holds %d places", vectors.Collection(), count), nil
}

func verifyGraph(ctx context.Context, cfg *config.Config) (string, error) {
	graph := neo4j.Connect(ctx, cfg.Neo4j)
	defer graph.Close(ctx)

	if !graph.Available() {
		return "", errors.New("not reachable, answers will use vector search only")
	}

	return "connected to " + cfg.Neo4j.URI, nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var longVerify = `
Verify the setup before serving: the chat and embedding credentials, that
the embedding model loads with the expected dimension, that the Qdrant
collection is reachable and populated, and whether Neo4j is reachable.
`
