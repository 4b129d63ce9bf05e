package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ErrAuthenticationFailed is the only authentication failure clients ever see
var ErrAuthenticationFailed = errors.New("invalid email or password")

// FieldError describes one invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field of a request
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field error
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field errors were recorded
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// AuthReason tags why an authentication attempt failed. It is for logs only.
type AuthReason string

const (
	AuthReasonInvalidCredentials AuthReason = "invalid_credentials"
	AuthReasonUserNotFound       AuthReason = "user_not_found"
	AuthReasonNotAuthorized      AuthReason = "not_authorized"
	AuthReasonStoreFailure       AuthReason = "store_failure"
)

// AuthError is the internal form of an authentication failure
type AuthError struct {
	Reason AuthReason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is lets every AuthError match ErrAuthenticationFailed
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// PersistenceError wraps a store failure with the operation that caused it
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
