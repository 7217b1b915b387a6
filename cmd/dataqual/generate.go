// cmd/dataqual/generate.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataqual/dataqual/pkg/generator"
)

var (
	genRows  int
	genSeed  int64
	genClean bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [output.csv]",
	Short: "Generate a sample customer dataset",
	Long: `Generate writes a sample customer dataset to the given CSV path. By
default the data is messy: duplicate rows, missing cells, padded and
inconsistently cased text, mixed date formats, outliers, and unruly
column names. Use --clean for a tidy dataset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := generator.GenerateSampleCSV(args[0], generator.Options{
			NumRows: genRows,
			Seed:    genSeed,
			Messy:   !genClean,
		}, logger)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows, %d columns to %s\n", t.NumRows(), t.NumColumns(), args[0])
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genRows, "rows", 1000, "number of base rows to generate")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "random seed")
	generateCmd.Flags().BoolVar(&genClean, "clean", false, "generate tidy data without quality issues")
	rootCmd.AddCommand(generateCmd)
}
