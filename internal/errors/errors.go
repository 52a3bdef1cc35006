package errors

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Diagnostic is a problem found while formatting documentation that does not
// abort the stage that found it.
type Diagnostic struct {
	Symbol   string
	Kind     string
	Group    string
	File     string
	Target   string
	Message  string
	Severity ErrorSeverity
}

// ErrorSeverity represents the severity of a diagnostic
type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
)

// String returns the string representation of the severity
func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityInfo:
		return "info"
	case ErrorSeverityWarning:
		return "warning"
	case ErrorSeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	location := d.File
	if location == "" {
		location = d.Group
	}
	return fmt.Sprintf("%s: %s: %s %s: %s", location, d.Severity, d.Kind, d.Symbol, d.Message)
}

// ErrorCollector collects diagnostics from concurrent formatting workers
type ErrorCollector struct {
	diagnostics []Diagnostic
	mutex       sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		diagnostics: make([]Diagnostic, 0),
	}
}

// Add adds a diagnostic to the collector
func (ec *ErrorCollector) Add(d Diagnostic) {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.diagnostics = append(ec.diagnostics, d)
}

// Diagnostics returns every collected diagnostic in a stable order
func (ec *ErrorCollector) Diagnostics() []Diagnostic {
	ec.mutex.RLock()
	result := make([]Diagnostic, len(ec.diagnostics))
	copy(result, ec.diagnostics)
	ec.mutex.RUnlock()

	// workers append in completion order
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Group != result[j].Group {
			return result[i].Group < result[j].Group
		}
		if result[i].Symbol != result[j].Symbol {
			return result[i].Symbol < result[j].Symbol
		}
		return result[i].Target < result[j].Target
	})
	return result
}

// Errors returns the diagnostics with error severity
func (ec *ErrorCollector) Errors() []Diagnostic {
	return ec.bySeverity(ErrorSeverityError)
}

// Warnings returns the diagnostics with warning severity
func (ec *ErrorCollector) Warnings() []Diagnostic {
	return ec.bySeverity(ErrorSeverityWarning)
}

func (ec *ErrorCollector) bySeverity(severity ErrorSeverity) []Diagnostic {
	var out []Diagnostic
	for _, d := range ec.Diagnostics() {
		if d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors returns true if there are any error diagnostics
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	for _, d := range ec.diagnostics {
		if d.Severity == ErrorSeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of collected diagnostics
func (ec *ErrorCollector) Count() int {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.diagnostics)
}

// Err folds every error diagnostic into a single reference error naming each
// unresolved target, or returns nil when there are none.
func (ec *ErrorCollector) Err() error {
	errs := ec.Errors()
	if len(errs) == 0 {
		return nil
	}

	targets := make([]string, 0, len(errs))
	seen := make(map[string]bool)
	lines := make([]string, 0, len(errs))
	for i := range errs {
		lines = append(lines, errs[i].Error())
		if !seen[errs[i].Target] {
			seen[errs[i].Target] = true
			targets = append(targets, "`"+errs[i].Target+"`")
		}
	}

	return NewReferenceError(
		ErrCodeUnresolvedRefs,
		fmt.Sprintf("unable to find a link for %s", strings.Join(targets, ", ")),
	).WithContext("diagnostics", lines)
}
