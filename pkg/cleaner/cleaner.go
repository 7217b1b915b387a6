// pkg/cleaner/cleaner.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/model"
)

// Default thresholds applied when the caller leaves the corresponding
// option at its zero value.
const (
	// DefaultMissingThreshold is the missing fraction above which the
	// auto strategy drops a column outright
	DefaultMissingThreshold = 0.5
	// DefaultIQRThreshold is the IQR multiplier for outlier bounds
	DefaultIQRThreshold = 1.5
	// DefaultZScoreThreshold is the z-score cutoff for outlier removal
	DefaultZScoreThreshold = 3.0
)

// DefaultDateFormats is the ordered list of layouts tried by ParseDates
// when the caller supplies none. Day-first layouts come before
// month-first, so ambiguous cells resolve deterministically by
// priority, not locale inference.
var DefaultDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
}

// Cleaner applies deterministic, composable transformations over a
// table. Every operation returns a new table and a result describing
// its effect; the input is never mutated.
type Cleaner struct {
	logger *zap.Logger
}

// New creates a Cleaner. A nil logger disables logging.
func New(logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{logger: logger}
}

// Keep selects which row of a duplicate group survives
type Keep int

const (
	// KeepFirst keeps the earliest row of each duplicate group
	KeepFirst Keep = iota
	// KeepLast keeps the latest row of each duplicate group
	KeepLast
)

// ParseKeep maps a keep name to its variant, rejecting unknown names
// at the boundary.
func ParseKeep(s string) (Keep, error) {
	switch s {
	case "", "first":
		return KeepFirst, nil
	case "last":
		return KeepLast, nil
	default:
		return 0, &model.ConfigurationError{Param: "keep", Reason: "unsupported value " + s}
	}
}

// Strategy selects how missing values are resolved
type Strategy int

const (
	// StrategyAuto drops columns past the missing threshold, then
	// imputes the remaining missing cells per column type
	StrategyAuto Strategy = iota
	// StrategyDropRows removes every row with a missing target cell
	StrategyDropRows
	// StrategyFillValue replaces missing cells with a caller-supplied literal
	StrategyFillValue
)

// ParseStrategy maps a strategy name to its variant, rejecting unknown
// names at the boundary.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "auto":
		return StrategyAuto, nil
	case "drop_rows":
		return StrategyDropRows, nil
	case "fill_value":
		return StrategyFillValue, nil
	default:
		return 0, &model.ConfigurationError{Param: "strategy", Reason: "unsupported value " + s}
	}
}

// Method selects the outlier detection algorithm
type Method int

const (
	// MethodIQR flags values outside [Q1 - k*IQR, Q3 + k*IQR]
	MethodIQR Method = iota
	// MethodZScore flags values whose |z| exceeds the threshold
	MethodZScore
)

// ParseMethod maps a method name to its variant, rejecting unknown
// names at the boundary.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "iqr":
		return MethodIQR, nil
	case "zscore":
		return MethodZScore, nil
	default:
		return 0, &model.ConfigurationError{Param: "method", Reason: "unsupported value " + s}
	}
}
