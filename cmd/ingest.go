package cmd

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/theapemachine/hybrid-travel/pkg/config"
	"github.com/theapemachine/hybrid-travel/pkg/dataset"
	"github.com/theapemachine/hybrid-travel/pkg/embed"
	"github.com/theapemachine/hybrid-travel/pkg/stores/neo4j"
	"github.com/theapemachine/hybrid-travel/pkg/stores/qdrant"
)

var (
	datasetFile string
	graphFlag   bool
	vectorFlag  bool
	batchFlag   int

	ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Load the travel dataset into Qdrant and Neo4j",
		Long:  longIngest,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			places, err := dataset.Load(datasetFile)
			if err != nil {
				return err
			}

			log.Info("dataset loaded", "file", datasetFile, "places", len(places))

			if !graphFlag && !vectorFlag {
				graphFlag, vectorFlag = true, true
			}

			if graphFlag {
				graph := neo4j.Connect(ctx, cfg.Neo4j)
				if !graph.Available() {
					return errors.New("neo4j is not reachable, cannot load the graph")
				}
				defer graph.Close(ctx)

				if err := graph.Load(ctx, places, func(stage string, done, total int) {
					if done == total || done%100 == 0 {
						log.Info("loading graph", "stage", stage, "done", done, "total", total)
					}
				}); err != nil {
					return err
				}

				log.Info("done loading into Neo4j")
			}

			if vectorFlag {
				cfg.Embedding.BatchSize = batchFlag

				embedder, err := embed.New(cfg.Embedding, cfg.Keys)
				if err != nil {
					return err
				}
				defer embed.Close(embedder)

				vectors, err := qdrant.Connect(cfg.Qdrant)
				if err != nil {
					return err
				}
				defer vectors.Close()

				if err := vectors.Load(ctx, embedder, places, batchFlag, func(done, total int) {
					log.Info("loading vectors", "done", done, "total", total)
				}); err != nil {
					return err
				}

				log.Info("done loading into Qdrant", "collection", vectors.Collection())
			}

			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&datasetFile, "file", "f", dataset.DefaultFile, "Dataset JSON file")
	ingestCmd.Flags().BoolVar(&graphFlag, "graph", false, "Load the knowledge graph")
	ingestCmd.Flags().BoolVar(&vectorFlag, "vector", false, "Load the vector index")
	ingestCmd.Flags().IntVar(&batchFlag, "batch", qdrant.DefaultBatchSize, "Places embedded per request")
}

var longIngest = `
Load the travel dataset, a JSON array of places, into the stores. Without
--graph or --vector both are loaded. Loading is idempotent: places are merged
by id in Neo4j and point ids derive from place ids in Qdrant.

Examples:
  hybrid-travel ingest
  hybrid-travel ingest --graph --file data/vietnam_travel_dataset.json
`
