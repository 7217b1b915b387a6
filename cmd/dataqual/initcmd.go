// cmd/dataqual/initcmd.go

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataqual/dataqual/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter configuration file",
	Long: `Init writes the effective run options (defaults, environment, and any
--config file merged in) to a YAML file, dataqual.yaml by default.
Existing files are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "dataqual.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.SaveRunOptions(runOpts, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
