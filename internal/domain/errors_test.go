package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapValidationError(t *testing.T) {
	tests := []struct {
		name               string
		subject            string
		cause              error
		shouldContainInMsg []string
	}{
		{
			name:    "with form errors",
			subject: "formation",
			cause:   &FormValidationError{Fields: FieldErrors{"title": "title cannot be empty"}},
			shouldContainInMsg: []string{
				"VALIDATION_FAILED",
				"validation failed for formation",
				"title+cannot+be+empty",
			},
		},
		{
			name:    "with nil cause",
			subject: "formation",
			cause:   nil,
			shouldContainInMsg: []string{
				"validation failed for formation",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapValidationError(tt.subject, tt.cause)

			if err == nil {
				t.Fatal("expected error but got nil")
			}

			if !IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}

			for _, want := range tt.shouldContainInMsg {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected %q in %q", want, err.Error())
				}
			}

			if tt.cause != nil {
				var formErr *FormValidationError
				if !errors.As(err, &formErr) {
					t.Error("expected the form errors to be reachable with errors.As")
				}
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	wrapped := fmt.Errorf("edit page: %w", WrapFormationNotFound(7, nil))

	if !errors.Is(wrapped, ErrFormationNotFound) {
		t.Error("expected wrapped not-found error to match the sentinel")
	}
	if errors.Is(wrapped, ErrValidationFailed) {
		t.Error("did not expect a not-found error to match the validation sentinel")
	}
	if !strings.Contains(wrapped.Error(), "formation not found: 7") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		notFound       bool
		validation     bool
		badRequest     bool
		infrastructure bool
	}{
		{"formation not found", WrapFormationNotFound(1, nil), true, false, false, false},
		{"wrapped not found", fmt.Errorf("edit page: %w", ErrFormationNotFound), true, false, false, false},
		{"validation", WrapValidationError("formation", nil), false, true, false, false},
		{"listing parameter", WrapInvalidListingParameter("table", "user"), false, false, true, false},
		{"database", WrapDatabaseOperation("list formations", errors.New("disk I/O error")), false, false, false, true},
		{"not implemented", WrapNotImplemented("logout"), false, false, false, false},
		{"plain error", errors.New("boom"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.notFound {
				t.Errorf("IsNotFoundError = %v, want %v", got, tt.notFound)
			}
			if got := IsValidationError(tt.err); got != tt.validation {
				t.Errorf("IsValidationError = %v, want %v", got, tt.validation)
			}
			if got := IsBadRequestError(tt.err); got != tt.badRequest {
				t.Errorf("IsBadRequestError = %v, want %v", got, tt.badRequest)
			}
			if got := IsInfrastructureError(tt.err); got != tt.infrastructure {
				t.Errorf("IsInfrastructureError = %v, want %v", got, tt.infrastructure)
			}
		})
	}
}
