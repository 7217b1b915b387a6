// pkg/pipeline/metrics.go

package pipeline

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StepMetrics tracks one cleaning step within a run
type StepMetrics struct {
	Name         string        `json:"name"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	RowsIn       int           `json:"rows_in"`
	RowsOut      int           `json:"rows_out"`
	CellsTouched int           `json:"cells_touched"`
	Err          string        `json:"error,omitempty"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// RunMetrics tracks metrics for a full pipeline run
type RunMetrics struct {
	mu        sync.Mutex
	logger    *zap.Logger
	RunID     string        `json:"run_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Steps     []StepMetrics `json:"steps"`
	RowsIn    int           `json:"rows_in"`
	RowsOut   int           `json:"rows_out"`
}

// NewRunMetrics creates a metrics tracker for one run
func NewRunMetrics(runID string, logger *zap.Logger) *RunMetrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunMetrics{
		RunID:     runID,
		StartTime: time.Now(),
		Steps:     make([]StepMetrics, 0, 8),
		logger:    logger,
	}
}

// StartStep begins tracking a named step and returns its index
func (rm *RunMetrics) StartStep(name string, rowsIn int) int {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.Steps = append(rm.Steps, StepMetrics{
		Name:      name,
		StartTime: time.Now(),
		RowsIn:    rowsIn,
	})
	rm.logger.Debug("Step started",
		zap.String("step", name),
		zap.Int("rows_in", rowsIn))
	return len(rm.Steps) - 1
}

// EndStep completes tracking for the step at idx
func (rm *RunMetrics) EndStep(idx, rowsOut, cellsTouched int, err error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if idx < 0 || idx >= len(rm.Steps) {
		return
	}
	s := &rm.Steps[idx]
	s.EndTime = time.Now()
	s.Elapsed = s.EndTime.Sub(s.StartTime)
	s.RowsOut = rowsOut
	s.CellsTouched = cellsTouched
	if err != nil {
		s.Err = err.Error()
		rm.logger.Warn("Step failed",
			zap.String("step", s.Name),
			zap.Error(err))
		return
	}
	rm.logger.Info("Step complete",
		zap.String("step", s.Name),
		zap.Int("rows_in", s.RowsIn),
		zap.Int("rows_out", s.RowsOut),
		zap.Int("cells_touched", s.CellsTouched),
		zap.Duration("elapsed", s.Elapsed))
}

// Finish closes out the run
func (rm *RunMetrics) Finish(rowsIn, rowsOut int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.EndTime = time.Now()
	rm.RowsIn = rowsIn
	rm.RowsOut = rowsOut
}

// Duration returns the total run duration
func (rm *RunMetrics) Duration() time.Duration {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.EndTime.IsZero() {
		return time.Since(rm.StartTime)
	}
	return rm.EndTime.Sub(rm.StartTime)
}

// Summary returns an indented JSON rendering of the run metrics
func (rm *RunMetrics) Summary() (string, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	data, err := json.MarshalIndent(rm, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run metrics: %w", err)
	}
	return string(data), nil
}

// LogSummary emits a one-line summary of the completed run
func (rm *RunMetrics) LogSummary() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	elapsed := rm.EndTime.Sub(rm.StartTime)
	failed := 0
	for _, s := range rm.Steps {
		if s.Err != "" {
			failed++
		}
	}
	rm.logger.Info("Run complete",
		zap.String("run_id", rm.RunID),
		zap.Int("rows_in", rm.RowsIn),
		zap.Int("rows_out", rm.RowsOut),
		zap.Int("steps", len(rm.Steps)),
		zap.Int("failed_steps", failed),
		zap.Duration("elapsed", elapsed))
}
