// cmd/dataqual/cli_test.go

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gotest.tools/v3/assert"

	"github.com/dataqual/dataqual/pkg/config"
)

func testRunOptions() *config.RunOptions {
	return &config.RunOptions{
		Source:           "csv",
		OutputFormat:     "csv",
		StandardizeNames: true,
		Deduplicate:      true,
		DedupKeep:        "first",
		HandleMissing:    true,
		MissingStrategy:  "auto",
		MissingThreshold: 0.5,
		CleanText:        true,
		RemoveOutliers:   true,
		OutlierMethod:    "iqr",
		LogLevel:         "info",
		LogFormat:        "json",
	}
}

func TestInitCommandWritesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataqual.yaml")
	runOpts = testRunOptions()

	var out bytes.Buffer
	initCmd.SetOut(&out)
	assert.NilError(t, initCmd.RunE(initCmd, []string{path}))
	assert.Assert(t, strings.Contains(out.String(), path))

	loaded, err := config.LoadRunOptions(path)
	assert.NilError(t, err)
	assert.Equal(t, loaded.Source, "csv")
	assert.Equal(t, loaded.DedupKeep, "first")

	err = initCmd.RunE(initCmd, []string{path})
	assert.ErrorContains(t, err, "already exists")
}

func TestRunCommandWritesMetricsFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	data := "name,age\nalice,30\nalice,30\nbob,40\n"
	assert.NilError(t, os.WriteFile(input, []byte(data), 0o644))

	runOpts = testRunOptions()
	logger = zap.NewNop()
	runOutput = filepath.Join(dir, "out.csv")
	runReport = filepath.Join(dir, "report.json")
	runMetrics = filepath.Join(dir, "metrics.json")
	defer func() { runOutput, runReport, runMetrics = "", "", "" }()

	runCmd.SetContext(context.Background())
	var errOut bytes.Buffer
	runCmd.SetErr(&errOut)
	assert.NilError(t, runCmd.RunE(runCmd, []string{input}))

	b, err := os.ReadFile(runMetrics)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(b), `"run_id"`))
	assert.Assert(t, strings.Contains(string(b), `"steps"`))

	// the finish line reports the duplicate row dropped
	assert.Assert(t, strings.Contains(errOut.String(), "3 rows in, 2 rows out"))

	_, err = os.Stat(runOutput)
	assert.NilError(t, err)
	_, err = os.Stat(runReport)
	assert.NilError(t, err)
}
