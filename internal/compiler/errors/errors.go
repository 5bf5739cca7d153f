// Package errors provides structured error handling for the AOT generator.
// It defines error codes, categories, and formatting for both human-readable
// terminal output and machine-parseable JSON.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code in the generator
type ErrorCode string

// ErrorCategory represents the category of a generator error
type ErrorCategory string

const (
	// CategoryInput represents snapshot, hint and configuration errors (CFG100-199)
	CategoryInput ErrorCategory = "input"
	// CategoryCodeGen represents code generation errors (GEN600-699)
	CategoryCodeGen ErrorCategory = "codegen"
	// CategoryResolution represents instance creator resolution errors (RES800-899)
	CategoryResolution ErrorCategory = "resolution"
	// CategoryAccess represents protected access errors (ACC900-999)
	CategoryAccess ErrorCategory = "access"
)

// ErrorSeverity indicates the severity level of an error
type ErrorSeverity string

const (
	// SeverityError indicates an error that aborts the run
	SeverityError ErrorSeverity = "error"
	// SeverityWarning indicates a skipped contribution
	SeverityWarning ErrorSeverity = "warning"
	// SeverityInfo indicates informational messages
	SeverityInfo ErrorSeverity = "info"
)

// CompilerError represents a structured generator error
type CompilerError struct {
	// Code is the unique error code (e.g., "RES801")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable error type identifier
	Type string `json:"type"`
	// Category is the error category
	Category ErrorCategory `json:"category"`
	// Severity is the error severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the primary error message
	Message string `json:"message"`
	// Bean is the name of the bean at fault (optional)
	Bean string `json:"bean,omitempty"`
	// Class is the fully qualified class at fault (optional)
	Class string `json:"class,omitempty"`
	// File is the input file the error relates to (optional)
	File string `json:"file,omitempty"`
	// Candidates lists the members or packages involved in an ambiguity
	Candidates []string `json:"candidates,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`

	cause error
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	return FormatCompact(e)
}

// Unwrap returns the underlying cause, if any
func (e *CompilerError) Unwrap() error {
	return e.cause
}

// Format returns a human-readable error message for terminal output
func (e *CompilerError) Format() string {
	return FormatError(e)
}

// ToJSON returns the error as a JSON string
func (e *CompilerError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithBean sets the bean name for the error
func (e *CompilerError) WithBean(name string) *CompilerError {
	e.Bean = name
	return e
}

// WithClass sets the class name for the error
func (e *CompilerError) WithClass(name string) *CompilerError {
	e.Class = name
	return e
}

// WithFile sets the input file for the error
func (e *CompilerError) WithFile(file string) *CompilerError {
	e.File = file
	return e
}

// WithCandidates records the candidates involved in the error
func (e *CompilerError) WithCandidates(candidates ...string) *CompilerError {
	e.Candidates = candidates
	return e
}

// WithSuggestion sets a suggestion for fixing the error
func (e *CompilerError) WithSuggestion(suggestion string) *CompilerError {
	e.Suggestion = suggestion
	return e
}

// WithCause attaches the underlying error
func (e *CompilerError) WithCause(cause error) *CompilerError {
	e.cause = cause
	return e
}

// IsFatal reports whether the error aborts a run
func (e *CompilerError) IsFatal() bool {
	return e.Severity == SeverityError
}

// ErrorList is a collection of generator errors
type ErrorList []*CompilerError

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatErrorList(el)
}

// HasErrors returns true if the list contains any errors (excludes warnings/info)
func (el ErrorList) HasErrors() bool {
	for _, err := range el {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if the list contains any warnings
func (el ErrorList) HasWarnings() bool {
	for _, err := range el {
		if err.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// ToJSON returns all errors as a JSON array
func (el ErrorList) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ErrorCount returns the number of errors by severity
func (el ErrorList) ErrorCount() (errors, warnings, info int) {
	for _, err := range el {
		switch err.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			info++
		}
	}
	return
}

// As returns the CompilerError wrapped in err, if any
func As(err error) (*CompilerError, bool) {
	var ce *CompilerError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasCode reports whether err wraps a CompilerError with the given code
func HasCode(err error, code ErrorCode) bool {
	ce, ok := As(err)
	return ok && ce.Code == code
}

// newError creates a new CompilerError with the given parameters
func newError(
	code ErrorCode,
	typ string,
	category ErrorCategory,
	severity ErrorSeverity,
	message string,
) *CompilerError {
	return &CompilerError{
		Code:     code,
		Type:     typ,
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

func quoted(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("'%s'", v)
	}
	return out
}
