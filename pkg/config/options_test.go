// pkg/config/options_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func TestLoadRunOptionsDefaults(t *testing.T) {
	// point the default lookup at an empty directory
	wd, err := os.Getwd()
	assert.NilError(t, err)
	defer os.Chdir(wd)
	assert.NilError(t, os.Chdir(t.TempDir()))

	opts, err := LoadRunOptions("")
	assert.NilError(t, err)

	assert.Equal(t, opts.Source, "csv")
	assert.Equal(t, opts.DedupKeep, "first")
	assert.Equal(t, opts.MissingStrategy, "auto")
	assert.Equal(t, opts.MissingThreshold, 0.5)
	assert.Equal(t, opts.OutlierMethod, "iqr")
	assert.Equal(t, opts.LogLevel, "info")
	assert.Equal(t, len(opts.DateFormats), 6)
	assert.Assert(t, opts.Deduplicate)
	assert.Assert(t, opts.HandleMissing)
	assert.Assert(t, opts.CleanText)
	assert.Assert(t, opts.RemoveOutliers)
}

func TestLoadRunOptionsSeededFromEnvironment(t *testing.T) {
	wd, err := os.Getwd()
	assert.NilError(t, err)
	defer os.Chdir(wd)
	assert.NilError(t, os.Chdir(t.TempDir()))

	t.Setenv("MISSING_VALUE_THRESHOLD", "0.25")
	t.Setenv("DATE_FORMATS", "2006-01-02, 02 Jan 2006")
	t.Setenv("LOG_LEVEL", "debug")

	opts, err := LoadRunOptions("")
	assert.NilError(t, err)
	assert.Equal(t, opts.MissingThreshold, 0.25)
	assert.DeepEqual(t, opts.DateFormats, []string{"2006-01-02", "02 Jan 2006"})
	assert.Equal(t, opts.LogLevel, "debug")
}

func TestLoadRunOptionsRejectsBadEnvironmentThreshold(t *testing.T) {
	wd, err := os.Getwd()
	assert.NilError(t, err)
	defer os.Chdir(wd)
	assert.NilError(t, os.Chdir(t.TempDir()))

	t.Setenv("MISSING_VALUE_THRESHOLD", "1.5")

	_, err = LoadRunOptions("")
	assert.ErrorContains(t, err, "failed to load application config")
}

func TestLoadRunOptionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := "source: postgres\n" +
		"missing_strategy: drop_rows\n" +
		"outlier_threshold: 2.5\n" +
		"date_columns:\n  - signup_date\n"
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := LoadRunOptions(path)
	assert.NilError(t, err)
	assert.Equal(t, opts.Source, "postgres")
	assert.Equal(t, opts.MissingStrategy, "drop_rows")
	assert.Equal(t, opts.OutlierThreshold, 2.5)
	assert.DeepEqual(t, opts.DateColumns, []string{"signup_date"})
	// untouched keys keep their defaults
	assert.Equal(t, opts.DedupKeep, "first")
}

func TestLoadRunOptionsMissingExplicitFile(t *testing.T) {
	_, err := LoadRunOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestSaveRunOptionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.yaml")
	in := &RunOptions{
		Source:          "csv",
		Input:           "data.csv",
		MissingStrategy: "fill_value",
		DateFormats:     []string{"2006-01-02"},
	}
	assert.NilError(t, SaveRunOptions(in, path))

	out, err := LoadRunOptions(path)
	assert.NilError(t, err)
	assert.Equal(t, out.Input, "data.csv")
	assert.Equal(t, out.MissingStrategy, "fill_value")
	assert.DeepEqual(t, out.DateFormats, []string{"2006-01-02"})
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NilError(t, err)
	assert.NilError(t, cfg.Validate())
	assert.Equal(t, cfg.MissingThreshold, 0.5)
}
