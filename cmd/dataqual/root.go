// cmd/dataqual/root.go

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/config"
	"github.com/dataqual/dataqual/pkg/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	runOpts *config.RunOptions
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dataqual",
	Short: "Clean tabular datasets and report on their quality",
	Long: `dataqual runs a configurable cleaning pipeline over tabular data:
duplicate removal, missing value handling, text and column name
normalization, date parsing, and outlier removal, followed by a
quality report.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dataqual.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json or console")
}

func initConfig() {
	opts, err := config.LoadRunOptions(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to load config:", err)
		opts = &config.RunOptions{}
	}
	if logLevel != "" {
		opts.LogLevel = logLevel
	}
	if logFormat != "" {
		opts.LogFormat = logFormat
	}
	runOpts = opts

	l, err := logging.Setup(opts.LogLevel, opts.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to set up logging:", err)
		l = zap.NewNop()
	}
	logger = l
}
