/*
Package dataset reads the travel dataset: a JSON array of places, each with
an id, a type, a name and optional location, tags and connections.
*/
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/theapemachine/hybrid-travel/pkg/types"
	"github.com/theapemachine/hybrid-travel/pkg/utils"
)

// DefaultFile is where the ingest and check commands look by default.
const DefaultFile = "vietnam_travel_dataset.json"

// Load reads and validates the dataset at path.
func Load(path string) ([]types.Place, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a dataset from r. Every record needs an id and a name.
func Decode(r io.Reader) ([]types.Place, error) {
	var places []types.Place

	if err := json.NewDecoder(r).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	for i, place := range places {
		if err := utils.ValidateStruct(place); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return places, nil
}
