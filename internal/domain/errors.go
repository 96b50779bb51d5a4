package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Domain Error Types
// ============================================================================

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code, so wrapped errors can be
// compared against the sentinels below with errors.Is
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ============================================================================
// Common Domain Errors
// ============================================================================

var (
	// Formation Errors
	ErrFormationNotFound = &DomainError{
		Code:    "FORMATION_NOT_FOUND",
		Message: "formation not found",
	}

	// Validation Errors
	ErrValidationFailed = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
	}
	ErrInvalidListingParameter = &DomainError{
		Code:    "INVALID_LISTING_PARAMETER",
		Message: "invalid sort or search parameter",
	}

	// OAuth Errors
	ErrOAuthNotConfigured = &DomainError{
		Code:    "OAUTH_NOT_CONFIGURED",
		Message: "no OAuth provider is configured",
	}
	ErrNotImplemented = &DomainError{
		Code:    "NOT_IMPLEMENTED",
		Message: "not implemented",
	}

	// Infrastructure Errors
	ErrDatabaseOperation = &DomainError{
		Code:    "DATABASE_OPERATION_FAILED",
		Message: "database operation failed",
	}
)

// ============================================================================
// Error Wrapping Helpers
// ============================================================================

// WrapFormationNotFound wraps an error as a formation not found error
func WrapFormationNotFound(id int64, cause error) error {
	return &DomainError{
		Code:    ErrFormationNotFound.Code,
		Message: fmt.Sprintf("formation not found: %d", id),
		Cause:   cause,
	}
}

// WrapValidationError wraps a validation failure on a form
func WrapValidationError(subject string, cause error) error {
	msg := fmt.Sprintf("validation failed for %s", subject)
	return &DomainError{
		Code:    ErrValidationFailed.Code,
		Message: msg,
		Cause:   cause,
	}
}

// WrapInvalidListingParameter reports a rejected sort/search parameter
func WrapInvalidListingParameter(param, value string) error {
	return &DomainError{
		Code:    ErrInvalidListingParameter.Code,
		Message: fmt.Sprintf("%s %q is not allowed", param, value),
	}
}

// WrapNotImplemented reports an endpoint whose behavior has not been defined yet
func WrapNotImplemented(operation string) error {
	return &DomainError{
		Code:    ErrNotImplemented.Code,
		Message: fmt.Sprintf("%s is not implemented", operation),
	}
}

// WrapDatabaseOperation wraps an error as a database operation failure
func WrapDatabaseOperation(operation string, cause error) error {
	return &DomainError{
		Code:    ErrDatabaseOperation.Code,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Cause:   cause,
	}
}

// ============================================================================
// Error Checking Helpers
// ============================================================================

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrFormationNotFound.Code
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrValidationFailed.Code
	}
	return false
}

// IsBadRequestError checks if an error comes from a rejected request parameter
func IsBadRequestError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrInvalidListingParameter.Code
	}
	return false
}

// IsInfrastructureError checks if an error is an infrastructure error
func IsInfrastructureError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrDatabaseOperation.Code
	}
	return false
}
