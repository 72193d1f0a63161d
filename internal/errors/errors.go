package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes a failure of extraction, classification or the cost
// overlay.
type ErrorType string

const (
	// ErrorTypeInputMalformed marks a document that is not well-formed for the
	// expected shape: missing required top-level key or wrong value kind.
	ErrorTypeInputMalformed ErrorType = "InputMalformed"
	// ErrorTypeAddressCollision marks two descriptors resolving to the same
	// address within one document.
	ErrorTypeAddressCollision ErrorType = "AddressCollision"
	// ErrorTypeAddressUnresolved marks a descriptor lacking the fields needed
	// to compute its address.
	ErrorTypeAddressUnresolved ErrorType = "AddressUnresolved"
	// ErrorTypeProviderUnavailable marks a cost provider failure. It degrades
	// the cost overlay only and never invalidates a drift report.
	ErrorTypeProviderUnavailable ErrorType = "ProviderUnavailable"
)

// DriftError is a categorized error with optional actionable guidance.
type DriftError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Solutions []string
}

// Error implements the error interface.
func (e *DriftError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *DriftError) Unwrap() error {
	return e.Cause
}

// Display renders a multi-line, user-facing description including solutions.
func (e *DriftError) Display() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Cause: %v\n", e.Cause))
	}
	if len(e.Solutions) > 0 {
		sb.WriteString("\nSolutions:\n")
		for _, s := range e.Solutions {
			sb.WriteString(fmt.Sprintf("  - %s\n", s))
		}
	}
	return sb.String()
}

// New creates a DriftError of the given type.
func New(errType ErrorType, format string, args ...interface{}) *DriftError {
	return &DriftError{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithCause attaches an underlying error.
func (e *DriftError) WithCause(cause error) *DriftError {
	e.Cause = cause
	return e
}

// WithSolutions appends solution steps shown by Display.
func (e *DriftError) WithSolutions(solutions ...string) *DriftError {
	e.Solutions = append(e.Solutions, solutions...)
	return e
}

// IsType reports whether err is, or wraps, a DriftError of the given type.
func IsType(err error, errType ErrorType) bool {
	var de *DriftError
	if errors.As(err, &de) {
		return de.Type == errType
	}
	return false
}

// InputMalformed creates a malformed-document error.
func InputMalformed(format string, args ...interface{}) *DriftError {
	return New(ErrorTypeInputMalformed, format, args...)
}

// AddressCollision creates a duplicate-address error.
func AddressCollision(address string) *DriftError {
	return New(ErrorTypeAddressCollision, "duplicate resource address %q", address).
		WithSolutions(
			"check the document for resources sharing the same type and name",
			"multi-instance resources must carry distinct instance indexes",
		)
}

// AddressUnresolved creates an unresolvable-descriptor error.
func AddressUnresolved(format string, args ...interface{}) *DriftError {
	return New(ErrorTypeAddressUnresolved, format, args...).
		WithSolutions(
			"every resource descriptor needs both a type and a name",
			"run with --lenient to collect unresolvable descriptors instead of failing",
		)
}

// ProviderUnavailable creates a cost-provider error.
func ProviderUnavailable(cause error) *DriftError {
	return New(ErrorTypeProviderUnavailable, "cost provider unavailable").
		WithCause(cause).
		WithSolutions(
			"install infracost (https://www.infracost.io/docs/) and ensure it is on PATH",
			"drift detection completed; only the cost overlay is affected",
		)
}
