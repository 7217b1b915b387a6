// pkg/model/errors.go
package model

import (
	"fmt"
	"strings"
)

// ConfigurationError reports structurally invalid caller-supplied
// parameters: unknown column names, empty required sets, unsupported
// strategy or method names. The operation never ran.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Param, e.Reason)
}

// CleaningError reports that an operation cannot produce a
// well-defined result from the given data, e.g. a median over zero
// present values or a full-column date parse failure. The input table
// is returned unchanged alongside this error.
type CleaningError struct {
	Op     string
	Column string
	Reason string
}

func (e *CleaningError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: column %q: %s", e.Op, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// DataValidationError is raised only by fail-fast checks (schema
// presence). It always surfaces to the caller and is never retried
// internally.
type DataValidationError struct {
	Check          string
	MissingColumns []string
	Reason         string
}

func (e *DataValidationError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("%s validation failed: missing columns: %s",
			e.Check, strings.Join(e.MissingColumns, ", "))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Check, e.Reason)
}
