// pkg/config/options.go

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RunOptions is the file- and environment-driven configuration for one
// pipeline run. Precedence: env (DATAQUAL_*) > config file > defaults.
type RunOptions struct {
	Source string `mapstructure:"source" yaml:"source"`
	Input  string `mapstructure:"input" yaml:"input"`

	Output       string `mapstructure:"output" yaml:"output"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	Report       string `mapstructure:"report" yaml:"report"`

	StandardizeNames bool     `mapstructure:"standardize_names" yaml:"standardize_names"`
	Deduplicate      bool     `mapstructure:"deduplicate" yaml:"deduplicate"`
	DedupSubset      []string `mapstructure:"dedup_subset" yaml:"dedup_subset"`
	DedupKeep        string   `mapstructure:"dedup_keep" yaml:"dedup_keep"`

	HandleMissing    bool    `mapstructure:"handle_missing" yaml:"handle_missing"`
	MissingStrategy  string  `mapstructure:"missing_strategy" yaml:"missing_strategy"`
	MissingThreshold float64 `mapstructure:"missing_threshold" yaml:"missing_threshold"`

	CleanText   bool     `mapstructure:"clean_text" yaml:"clean_text"`
	TextColumns []string `mapstructure:"text_columns" yaml:"text_columns"`

	DateColumns []string `mapstructure:"date_columns" yaml:"date_columns"`
	DateFormats []string `mapstructure:"date_formats" yaml:"date_formats"`

	RemoveOutliers   bool     `mapstructure:"remove_outliers" yaml:"remove_outliers"`
	OutlierMethod    string   `mapstructure:"outlier_method" yaml:"outlier_method"`
	OutlierColumns   []string `mapstructure:"outlier_columns" yaml:"outlier_columns"`
	OutlierThreshold float64  `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`

	RequiredColumns []string `mapstructure:"required_columns" yaml:"required_columns"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// LoadRunOptions loads run options from file, env, and defaults. An
// empty cfgFile looks for dataqual.yaml in the working directory; a
// missing file is not an error. Precedence: DATAQUAL_* env > config
// file > application defaults from LoadConfig (MISSING_VALUE_THRESHOLD,
// DATE_FORMATS, LOG_LEVEL, LOG_FORMAT) > built-ins.
func LoadRunOptions(cfgFile string) (*RunOptions, error) {
	app, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load application config: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DATAQUAL")
	v.AutomaticEnv()

	v.SetDefault("source", "csv")
	v.SetDefault("output_format", "csv")
	v.SetDefault("standardize_names", true)
	v.SetDefault("deduplicate", true)
	v.SetDefault("dedup_keep", "first")
	v.SetDefault("handle_missing", true)
	v.SetDefault("missing_strategy", "auto")
	v.SetDefault("missing_threshold", app.MissingThreshold)
	v.SetDefault("date_formats", app.DateFormats)
	v.SetDefault("clean_text", true)
	v.SetDefault("remove_outliers", true)
	v.SetDefault("outlier_method", "iqr")
	v.SetDefault("log_level", app.LogLevel)
	v.SetDefault("log_format", app.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("dataqual")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var opts RunOptions
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run options: %w", err)
	}
	return &opts, nil
}

// SaveRunOptions writes the options to path as YAML, creating parent
// directories as needed.
func SaveRunOptions(opts *RunOptions, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	b, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal run options: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
