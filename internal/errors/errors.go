// Package errors provides a lightweight structured error type (ScaffoldError)
// for category-based classification in the generation pipeline and CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a scaffold error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryPreset     ErrorCategory = "preset"

	// Plugin composition and execution errors
	CategoryPlugin   ErrorCategory = "plugin"
	CategoryManifest ErrorCategory = "manifest"

	// Generation and persistence errors
	CategoryTransform  ErrorCategory = "transform"
	CategoryInject     ErrorCategory = "inject"
	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryGit        ErrorCategory = "git"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ScaffoldError is a structured error with category, severity, and context
type ScaffoldError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ScaffoldError
type ContextFields map[string]any

// Error implements the error interface
func (e *ScaffoldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ScaffoldError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ScaffoldError) WithContext(key string, value any) *ScaffoldError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ScaffoldError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ScaffoldError {
	return &ScaffoldError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ScaffoldError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ScaffoldError {
	return &ScaffoldError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category. The error
// chain is unwrapped, so classification survives %w wrapping.
func IsCategory(err error, category ErrorCategory) bool {
	var se *ScaffoldError
	if stderrors.As(err, &se) {
		return se.Category == category
	}
	return false
}

// GetCategory extracts the category from the first ScaffoldError in the
// chain, or returns CategoryInternal when there is none
func GetCategory(err error) ErrorCategory {
	var se *ScaffoldError
	if stderrors.As(err, &se) {
		return se.Category
	}
	return CategoryInternal
}
