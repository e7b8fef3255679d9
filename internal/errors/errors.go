// Package errors provides centralized error definitions and error handling
// utilities for teamdraft. It defines domain-specific errors, semantic error
// types, error constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures from specific subsystems:
//   - ValidationError: bad user input (empty name, capacity, duplicates,
//     non-numeric totals)
//   - ReentrancyError: dispatch invoked from within a reducer or subscriber
//   - RenderError: a panic raised while producing component markup
//   - PersistenceError: the save call to the team endpoint failed
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewValidationError("name cannot be empty").WithField("name")
//	err := errors.NewPersistenceError("save failed", cause).WithEndpoint(url)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrRosterFull) { ... }
//
//	var vErr *errors.ValidationError
//	if errors.As(err, &vErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Roster-related sentinel errors
var (
	// ErrEmptyName indicates a member name was blank after trimming.
	ErrEmptyName = New("member name is empty")
	// ErrRosterFull indicates the roster already holds the confirmed total.
	ErrRosterFull = New("roster is at capacity")
	// ErrDuplicateName indicates an exact qualified-name duplicate.
	ErrDuplicateName = New("member name already exists")
	// ErrMemberNotFound indicates an index that refers to no member.
	ErrMemberNotFound = New("member not found")
)

// Store-related sentinel errors
var (
	// ErrReentrantDispatch indicates dispatch was called during a dispatch.
	ErrReentrantDispatch = New("reentrant dispatch")
	// ErrUnknownAction indicates an action type outside the closed set.
	ErrUnknownAction = New("unknown action type")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrSaveFailed indicates the persistence endpoint rejected the split.
	ErrSaveFailed = New("save failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// DraftError is the base interface for all teamdraft errors.
// It extends the standard error interface with classification methods.
type DraftError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid user input. It is recovered locally and
// surfaced as inline feedback; it never mutates state.
//
// Example:
//
//	err := errors.NewValidationError("total must be a positive number")
//	err = err.WithField("totalMembers").WithValue(raw)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the rejected value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// ReentrancyError represents a dispatch invoked from within an in-flight
// dispatch (a reducer or a subscriber). It is fatal to that dispatch call;
// state is left unchanged.
type ReentrancyError struct {
	baseError
	ActionType string
}

// NewReentrancyError creates a new ReentrancyError for the offending action.
func NewReentrancyError(actionType string) *ReentrancyError {
	return &ReentrancyError{
		baseError: baseError{
			message:    "dispatch called during an in-flight dispatch",
			cause:      ErrReentrantDispatch,
			severity:   SeverityError,
			retryable:  false,
			userFacing: false,
		},
		ActionType: actionType,
	}
}

// Error returns the formatted error message.
func (e *ReentrancyError) Error() string {
	if e.ActionType != "" {
		return fmt.Sprintf("reentrancy error [action=%s]: %s", e.ActionType, e.message)
	}
	return fmt.Sprintf("reentrancy error: %s", e.message)
}

// Is checks if this error matches the target.
func (e *ReentrancyError) Is(target error) bool {
	if _, ok := target.(*ReentrancyError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// RenderError represents a panic raised while producing component markup.
// It is caught per component and treated as a skipped frame.
type RenderError struct {
	baseError
	Component string
	Recovered any
}

// NewRenderError creates a new RenderError from a recovered panic value.
func NewRenderError(component string, recovered any) *RenderError {
	return &RenderError{
		baseError: baseError{
			message:    fmt.Sprintf("render panicked: %v", recovered),
			severity:   SeverityError,
			retryable:  true, // the next trigger may render cleanly
			userFacing: false,
		},
		Component: component,
		Recovered: recovered,
	}
}

// Error returns the formatted error message.
func (e *RenderError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("render error [component=%s]: %s", e.Component, e.message)
	}
	return fmt.Sprintf("render error: %s", e.message)
}

// Is checks if this error matches the target.
func (e *RenderError) Is(target error) bool {
	if _, ok := target.(*RenderError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// PersistenceError represents a failed save of a finished team split.
// It is reported as a non-fatal message; in-memory state is unaffected and
// the user may retry manually.
type PersistenceError struct {
	baseError
	Endpoint   string
	StatusCode int
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(message string, cause error) *PersistenceError {
	return &PersistenceError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
	}
}

// WithEndpoint adds the target endpoint to the error context.
func (e *PersistenceError) WithEndpoint(endpoint string) *PersistenceError {
	e.Endpoint = endpoint
	return e
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *PersistenceError) WithStatusCode(code int) *PersistenceError {
	e.StatusCode = code
	return e
}

// Error returns the formatted error message.
func (e *PersistenceError) Error() string {
	var parts []string
	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "persistence error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("persistence error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PersistenceError) Is(target error) bool {
	if _, ok := target.(*PersistenceError); ok {
		return true
	}
	if errors.Is(target, ErrSaveFailed) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var draftErr DraftError
	if As(err, &draftErr) {
		return draftErr.IsRetryable()
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end
// users. Validation and persistence errors are always user-facing.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var draftErr DraftError
	if As(err, &draftErr) {
		return draftErr.IsUserFacing()
	}

	var validation *ValidationError
	var persistence *PersistenceError
	if As(err, &validation) || As(err, &persistence) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement DraftError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var draftErr DraftError
	if As(err, &draftErr) {
		return draftErr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
