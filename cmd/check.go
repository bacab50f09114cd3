package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/theapemachine/hybrid-travel/pkg/dataset"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Summarise the travel dataset",
	Long:  longCheck,
	RunE: func(cmd *cobra.Command, args []string) error {
		places, err := dataset.Load(datasetFile)
		if err != nil {
			return err
		}

		dataset.Inspect(places).Render(os.Stdout)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&datasetFile, "file", "f", dataset.DefaultFile, "Dataset JSON file")
}

var longCheck = `
Print a summary of the dataset before loading it: the number of records,
zoo-related records, counts per type, Hanoi-related records and a few
samples.
`
