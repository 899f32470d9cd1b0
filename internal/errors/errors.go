// Package errors provides typed domain errors for the quote engine.
//
// Every rejection a calculator can produce is a value of *Error with a
// Type from the taxonomy below. Nothing in the core panics or throws
// across a package boundary; callers branch on the type and render the
// message. Rejections are recoverable by changing input.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeIncompleteInput indicates a required field is missing or blank.
	// The UI should show a neutral prompt, not an alarm.
	TypeIncompleteInput Type = "INCOMPLETE_INPUT"

	// TypeInvalidInput indicates a field is present but out of domain
	// (negative, non-numeric, zero where a positive value is required)
	TypeInvalidInput Type = "INVALID_INPUT"

	// TypeNoEligibleProduct indicates no product matches the loan size or LTV
	TypeNoEligibleProduct Type = "NO_ELIGIBLE_PRODUCT"

	// TypeInfeasibleFees indicates fees and rolled/deferred costs alone
	// would consume the whole loan in a net-to-gross back-solve
	TypeInfeasibleFees Type = "INFEASIBLE_FEES"

	// TypeLtvExceeded indicates an explicit gross loan exceeds the LTV cap
	TypeLtvExceeded Type = "LTV_EXCEEDED"

	// TypeExcluded indicates the borrower profile is outside the product's
	// eligibility envelope entirely
	TypeExcluded Type = "EXCLUDED"

	// TypeConfig indicates a rate table or configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNetwork indicates a delivery error at the system boundary
	TypeNetwork Type = "NETWORK_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds remediation context to the error, e.g. the maximum
// permissible loan when an LTV cap is breached
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Incomplete creates an incomplete-input error for a named field
func Incomplete(field string) *Error {
	return Newf(TypeIncompleteInput, "%s is required", field)
}

// Invalid creates an invalid-input error
func Invalid(message string) *Error {
	return New(TypeInvalidInput, message)
}

// NoEligibleProduct creates a no-eligible-product error
func NoEligibleProduct(message string) *Error {
	return New(TypeNoEligibleProduct, message)
}

// InfeasibleFees creates an infeasible-fees error
func InfeasibleFees(message string) *Error {
	return New(TypeInfeasibleFees, message)
}

// LtvExceeded creates an LTV-exceeded error carrying the maximum
// permissible loan as remediation data
func LtvExceeded(message string, maxLoan float64) *Error {
	return New(TypeLtvExceeded, message).WithContext("max_loan", maxLoan)
}

// Excluded creates an excluded-profile error
func Excluded(message string) *Error {
	return New(TypeExcluded, message)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
